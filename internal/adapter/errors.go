// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrUnavailable         = errors.New("server temporarily unavailable")
	ErrInternalServerError = errors.New("internal server error")

	// ErrStreamInterrupted means a streaming pull ended without the terminal
	// marker chunk. Everything received from that stream must be discarded.
	ErrStreamInterrupted = errors.New("stream ended without terminal marker")
)
