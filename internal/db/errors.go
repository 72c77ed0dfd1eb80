// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains shared database errors and helpers.
package db

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested revision does not exist.
var ErrNotFound = errors.New("record not found")

// mapNoRows converts the driver-level no-rows sentinel into the
// package-level ErrNotFound so callers never import database/sql.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
