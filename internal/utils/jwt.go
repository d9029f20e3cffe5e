// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT scoped to one farm.
//
// Standard claims carried by the token:
//   - Issuer    (iss): the service that issued the token
//   - Subject   (sub): the farm ID as a UUID string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero, or if signing fails.
func GenerateJWTToken(issuer string, farmID uuid.UUID, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || farmID == uuid.Nil {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   farmID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, FarmID: farmID}, nil
}

// ValidateAndParseJWTToken validates a signed JWT and extracts the farm ID.
//
// Validation includes signature verification with the provided sign key, the
// issuer (iss) claim check, expiration, and presence of a UUID subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	farmID, err := uuid.Parse(subject)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during parsing subject as farm ID: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, FarmID: farmID}, nil
}

// ParseFarmIDUnverified extracts the farm ID subject from a token without
// checking the signature. The replica client holds no sign key; it only
// needs the farm label for rows it materializes locally, and the server
// still verifies the real claim on every call.
func ParseFarmIDUnverified(tokenString string) (uuid.UUID, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.RegisteredClaims{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error occurred during parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return uuid.Nil, errors.New("empty subject error")
	}

	farmID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error occurred during parsing subject as farm ID: %w", err)
	}

	return farmID, nil
}
