// Package logrussink connects a dispatcher to github.com/sirupsen/logrus.
//
// Records keep their creation time (Entry.WithTime) and their fields; the
// target is added as the "target" field. logrus levels map one to one,
// including trace.
package logrussink
