// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package configfile

import (
	"fmt"
	"os"
)

// BackupPath returns the sibling backup file for a configuration path.
func BackupPath(path string) string {
	return path + ".bak"
}

// EnsureBackup creates the sibling .bak copy if one does not exist yet.
// It never overwrites an existing backup; the first backup of a session
// is the one that predates all Sentinel edits. Returns the backup path.
func EnsureBackup(path string) (string, error) {
	bak := BackupPath(path)
	if _, err := os.Stat(bak); err == nil {
		return bak, nil
	}
	return WriteBackup(path)
}

// WriteBackup copies the configuration file to its sibling .bak path,
// replacing any previous backup. Returns the backup path.
func WriteBackup(path string) (string, error) {
	bak := BackupPath(path)
	if err := copyFile(path, bak); err != nil {
		return "", err
	}
	return bak, nil
}

// RestoreBackup copies the sibling .bak file back over the configuration
// file. A missing backup is an error surfaced to the caller.
func RestoreBackup(path string) error {
	bak := BackupPath(path)
	if _, err := os.Stat(bak); err != nil {
		return fmt.Errorf("backup not found at %s: %w", bak, err)
	}
	return copyFile(bak, path)
}

// copyFile copies src to dst preserving the source file mode.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", src, err)
	}
	perm := defaultMode()
	if fi, err := os.Stat(src); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("could not write %s: %w", dst, err)
	}
	return nil
}
