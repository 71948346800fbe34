// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package pokemon defines the catalog detail payload and the flattened record
// that the record stores persist.
package pokemon
