// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package catalog is a read-only client for the PokeAPI listing and detail
// endpoints.
package catalog
