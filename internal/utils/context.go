// Package utils provides general-purpose helper utilities used across the
// application: type-safe context keys, HTTP response writing, JWT token
// generation and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that may
// store string-keyed values in the same context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// FarmIDCtxKey is the key under which the authenticated farm identifier is
// stored in the request context by the auth middleware.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.FarmIDCtxKey, farmID)
var FarmIDCtxKey = contextKey("farmID")

// GetFarmIDFromContext retrieves the farm identifier from the context.
//
// Returns the farm ID and an ok flag:
//   - ok == true  — value is present and has the expected uuid.UUID type
//   - ok == false — value is missing or of an unexpected type
func GetFarmIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	farmID, ok := ctx.Value(FarmIDCtxKey).(uuid.UUID)
	return farmID, ok
}
