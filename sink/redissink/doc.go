// Package redissink provides a sink that ships records to a Redis list
// using github.com/redis/go-redis/v9.
//
// Records are encoded with the JSON formatter and buffered in the sink.
// A full batch, or a dispatcher flush, pushes the buffer with a single
// pipelined RPUSH, optionally followed by an LTRIM that caps the list at
// MaxLen entries. Consumers pop entries from the head of the list, oldest
// first.
//
// A batch that fails to push is discarded and reported through the
// dispatcher's OnSinkError hook; the sink does not retry.
package redissink
