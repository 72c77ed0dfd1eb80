// Copyright (c) 2026 Sentinel Team
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Sentinel using Cobra.
// It wires configuration and default services, and provides commands that
// delegate to the core session facade. CLI code should remain thin and leave
// the editing logic to `internal/core` and `internal/sshdconf`.
package cli
