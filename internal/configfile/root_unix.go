// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build !windows

package configfile

import (
	"fmt"
	"os"
)

// RequireRoot reports an error when the process lacks the privileges
// needed to edit system sshd_config files. Callers targeting a
// user-writable file can skip the check.
func RequireRoot() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("editing %s requires root privileges", DefaultPath)
	}
	return nil
}
