// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshdconf contains shared parser and editor errors.
package sshdconf

import "errors"

// ErrMalformedInput is returned by Parse when the input is not readable text.
// No partial Document is ever returned alongside it.
var ErrMalformedInput = errors.New("malformed input")

// ErrInvalidValue is returned when a key or value token would corrupt the
// line-oriented format (e.g. it contains a newline).
var ErrInvalidValue = errors.New("invalid value")

// ErrEntryNotFound is returned when a stale or unknown entry reference is
// passed to an edit operation. The Document is left unchanged.
var ErrEntryNotFound = errors.New("entry not found")

// ErrInvalidOperation is returned when an operation does not apply to the
// referenced entry kind (e.g. toggling a blank line). The Document is left
// unchanged.
var ErrInvalidOperation = errors.New("invalid operation")
