// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

// Package adapter provides transport-layer abstractions for communicating with
// the farm sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the replica
// client's service layer from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrUnavailable] for 503).
package adapter

import (
	"context"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the farm-scoping bearer token that will be attached to
	// all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// FullPull fetches the complete live record set of every entity in one
	// response, read under a single server-side snapshot.
	FullPull(ctx context.Context) (models.FullPullResponse, error)

	// StreamPull fetches the same snapshot as FullPull, delivered as
	// newline-delimited chunks. apply is invoked for every data chunk as it
	// arrives; its error aborts the stream. The returned watermark comes
	// from the terminal marker chunk. A stream that ends without the marker
	// was interrupted server-side and yields [ErrStreamInterrupted]; the
	// caller must discard everything applied so far.
	StreamPull(ctx context.Context, apply func(models.SyncChunk) error) (time.Time, error)

	// IncrementalPull submits the client's stored per-entity watermarks and
	// returns every change recorded after them, tombstones included.
	IncrementalPull(ctx context.Context, req models.IncrementalPullRequest) (models.IncrementalPullResponse, error)

	// Push submits a batch of local mutations and returns one outcome per
	// mutation, in submission order. Returns [ErrConflict] (wrapped) when
	// the server rejects the whole batch, or another error if the request
	// fails; per-mutation conflicts are reported inside the outcomes.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
}
