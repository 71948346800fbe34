// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil stores small artifacts, such as the catalog name listing,
// on disk under MD5-hashed file names with hour-based expiry.
package cacheutil
