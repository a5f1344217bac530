package utils

import "github.com/google/uuid"

// NewID returns a random (v4) UUID string used for connection and pair ids.
func NewID() string {
	return uuid.NewString()
}
