package dispatch

import (
	"fmt"
	"strings"
)

// OverflowPolicy defines what Emit does when a bounded channel is full
type OverflowPolicy int

const (
	// Block waits up to the block timeout for space, then drops the record
	// and counts it as ChannelFull
	Block OverflowPolicy = iota
	// DropNewest drops the record being emitted when the channel is full
	DropNewest
	// DropOldest evicts the oldest queued record to make room
	DropOldest
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "Block"
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy converts a policy name such as "block",
// "drop-newest" or "DropOldest" to an OverflowPolicy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "block", "":
		return Block, nil
	case "dropnewest", "drop":
		return DropNewest, nil
	case "dropoldest":
		return DropOldest, nil
	default:
		return Block, fmt.Errorf("dispatch: unknown overflow policy %q", s)
	}
}
