package service

import "errors"

var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNoMutationsProvided = errors.New("no mutations provided")
)
