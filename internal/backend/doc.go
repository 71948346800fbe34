// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package backend opens one of the record store implementations (dynamodb,
// s3, memory) from a Config.
package backend
