package event

import (
	"math/rand/v2"
)

// IDGenerator hands out client side event ids.
type IDGenerator interface {
	NextID() int64
}

const (
	minRandomID = 1
	maxRandomID = 1_000_000_000
)

// RandomIDs draws ids uniformly from [1, 1e9). Ids are not checked against
// existing events, so collisions are possible.
type RandomIDs struct{}

// NextID implements IDGenerator.
func (RandomIDs) NextID() int64 {
	return minRandomID + rand.Int64N(maxRandomID-minRandomID)
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() int64

// NextID implements IDGenerator.
func (f IDFunc) NextID() int64 { return f() }
