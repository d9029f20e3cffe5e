// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

// Package client implements the replica sync client runtime.
//
// It wires the server adapter, the SQLite replica, and the sync services
// into a single process lifecycle: one-shot sync or a looped background
// worker, depending on configuration.
package client
