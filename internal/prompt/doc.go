// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package prompt runs the interactive yes/no loop: pick a random pokemon,
// serve it from the record store or fetch, save and show it.
package prompt
