// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSyncService struct {
	calls atomic.Int64
}

func (c *countingSyncService) Bootstrap(context.Context) error { return nil }

func (c *countingSyncService) Sync(context.Context) error {
	c.calls.Add(1)
	return nil
}

func waitForCalls(t *testing.T, c *countingSyncService, want int64) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if c.calls.Load() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected at least %d sync calls, got %d", want, c.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestClientSyncJob_StartAndStop(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	job.Start(context.Background(), 10*time.Millisecond)
	waitForCalls(t, svc, 2)

	job.Stop()
	after := svc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.calls.Load(), "no syncs after Stop")
}

func TestClientSyncJob_RestartReplacesPreviousJob(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	job.Start(context.Background(), 10*time.Millisecond)
	job.Start(context.Background(), 10*time.Millisecond)
	waitForCalls(t, svc, 1)

	job.Stop()
}

func TestClientSyncJob_StopWithoutStart(t *testing.T) {
	job := NewClientSyncJob(&countingSyncService{})
	require.NotPanics(t, job.Stop)
}

func TestClientSyncJob_ContextCancelStopsJob(t *testing.T) {
	svc := &countingSyncService{}
	job := NewClientSyncJob(svc)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	waitForCalls(t, svc, 1)

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := svc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.calls.Load(), "no syncs after context cancellation")
}
