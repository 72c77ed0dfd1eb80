// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import "strings"

// Serialize renders the Document back to text. Entries that were never
// edited emit their raw line verbatim, so a freshly parsed Document
// serializes byte-identically to its input. Edited entries are rendered
// from their structured key/values with normalized single-space
// separation. The source file's trailing-newline convention is restored.
func (d *Document) Serialize() []byte {
	if len(d.entries) == 0 {
		return []byte{}
	}

	var b strings.Builder
	for i, e := range d.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.dirty {
			b.WriteString(e.render())
		} else {
			b.WriteString(e.raw)
		}
	}
	if d.trailingNewline {
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// String returns the serialized text. Mostly a convenience for tests and
// display code.
func (d *Document) String() string {
	return string(d.Serialize())
}
