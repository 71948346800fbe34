// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package store defines the record store contract and its error taxonomy.
// Implementations live under internal/backend.
package store
