// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package output renders a pokemon record as a text profile, JSON or YAML.
package output
