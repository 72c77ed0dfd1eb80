// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build windows

package configfile

// RequireRoot is a no-op on Windows, where the euid check does not
// apply. File ACLs surface any real permission problem at write time.
func RequireRoot() error {
	return nil
}
