// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package configfile owns the on-disk side of an edit session: reading
// the sshd_config bytes, writing them back atomically, and the backup
// copies around a save. The parser itself (internal/sshdconf) never
// touches the filesystem; everything file-shaped lives here.
package configfile // import "github.com/toeirei/sentinel/internal/configfile"

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPath is the sshd_config location edited when no --file flag or
// config entry overrides it.
const DefaultPath = "/etc/ssh/sshd_config"

// Load reads the configuration file. A missing file is an error; there
// is nothing sensible to edit without one.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return data, nil
}

// SaveAtomic writes data to path via a temp file in the same directory
// followed by a rename, so a crash mid-write never leaves a truncated
// sshd_config behind. The original file mode is preserved when the file
// already exists.
func SaveAtomic(path string, data []byte) error {
	perm := defaultMode()
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("could not set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("could not replace %s: %w", path, err)
	}
	return nil
}

// defaultMode picks the file mode for newly created files. On Windows,
// where POSIX permissions are not meaningful, it falls back to 0644.
func defaultMode() os.FileMode {
	if runtime.GOOS == "windows" {
		return 0644
	}
	return 0600
}
