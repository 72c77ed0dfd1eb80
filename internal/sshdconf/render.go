// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import (
	"strings"

	"github.com/toeirei/sentinel/util/slicest"
)

// ListItem is a read-only projection of one entry for presentation
// layers that render the Document as a selectable list.
type ListItem struct {
	Index         int
	Ref           Ref
	Kind          LineKind
	Key           string
	DisplayValues string
	Enabled       bool
}

// RenderList projects the Document into list items, one per entry, in
// file order. DisplayValues joins the value tokens with single spaces
// for display only; it is never written back to the Document.
func (d *Document) RenderList() []ListItem {
	return slicest.MapI(d.entries, func(i int, e *Entry) ListItem {
		return ListItem{
			Index:         i,
			Ref:           e.ref,
			Kind:          e.kind,
			Key:           e.key,
			DisplayValues: strings.Join(e.values, " "),
			Enabled:       e.Enabled(),
		}
	})
}
