package models

import "time"

// NewID mints an identifier from the creation instant in Unix milliseconds.
// Ids are monotonically increasing under normal interactive use; uniqueness is
// not cryptographically guaranteed and collisions within the same millisecond
// are tolerated.
func NewID() int64 {
	return time.Now().UnixMilli()
}
