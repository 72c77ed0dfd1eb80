// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package configfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WriteArchive writes a Zstandard-compressed snapshot of the
// configuration file to outPath. ".zst" is appended when missing.
// Returns the archive path actually written.
func WriteArchive(path, outPath string) (string, error) {
	if !strings.HasSuffix(outPath, ".zst") {
		outPath += ".zst"
	}

	data, err := Load(path)
	if err != nil {
		return "", err
	}

	outf, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("could not create archive: %w", err)
	}
	defer func() { _ = outf.Close() }()

	zw, err := zstd.NewWriter(outf)
	if err != nil {
		return "", fmt.Errorf("could not create zstd writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("could not write archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("could not finish archive: %w", err)
	}
	return outPath, nil
}

// ReadArchive decompresses a snapshot previously written by WriteArchive.
func ReadArchive(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("could not decompress archive: %w", err)
	}
	return data, nil
}
