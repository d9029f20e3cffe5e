package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token is a parsed farm-scoping credential. The sync engine does not issue
// or manage identities; it only resolves the farm a request acts on from an
// externally supplied JWT.
type Token struct {
	Token        *jwt.Token
	SignedString string

	// FarmID is the tenant the token is scoped to (the "sub" claim).
	FarmID uuid.UUID
}
