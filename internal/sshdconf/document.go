// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package sshdconf implements a round-trip-safe parser and editor for
// sshd_config-style text. A parsed Document keeps one entry per physical
// line, in file order, and preserves every byte of formatting the caller
// did not explicitly change. Mutations go through the Document methods;
// every failing call leaves the Document untouched.
package sshdconf // import "github.com/toeirei/sentinel/internal/sshdconf"

import (
	"fmt"
	"strings"
)

// Document is an ordered sequence of line entries plus the trailing
// newline convention of the source file. It has no persistence of its
// own; reading and writing bytes is the caller's job.
type Document struct {
	entries         []*Entry
	trailingNewline bool
	nextRef         Ref
}

// NewDocument returns an empty Document that serializes to an empty file.
func NewDocument() *Document {
	return &Document{nextRef: 1, trailingNewline: true}
}

// Len returns the number of line entries.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns the entries in file order. The slice is a copy; the
// entries themselves are shared and must only be mutated through the
// Document methods.
func (d *Document) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Entry resolves a stable reference to its entry.
func (d *Document) Entry(ref Ref) (*Entry, bool) {
	i := d.indexOf(ref)
	if i < 0 {
		return nil, false
	}
	return d.entries[i], true
}

// EntryAt returns the entry at a list position, as presented by RenderList.
func (d *Document) EntryAt(index int) (*Entry, bool) {
	if index < 0 || index >= len(d.entries) {
		return nil, false
	}
	return d.entries[index], true
}

// FindByKey returns all directive entries (enabled or commented-out)
// matching the keyword, case-insensitively. Keys may legitimately repeat
// (e.g. multiple Port lines), so zero or more matches are possible.
func (d *Document) FindByKey(key string) []*Entry {
	var out []*Entry
	for _, e := range d.entries {
		if e.HasKey(key) {
			out = append(out, e)
		}
	}
	return out
}

// Includes returns all active Include directives, in file order.
func (d *Document) Includes() []*Entry {
	var out []*Entry
	for _, e := range d.entries {
		if e.kind == KindDirective && strings.EqualFold(e.key, "Include") {
			out = append(out, e)
		}
	}
	return out
}

// AddDirective appends a new active directive line. Duplicate keys are
// permitted; first-match-wins semantics at daemon load time are a concern
// for the caller, not the editor.
func (d *Document) AddDirective(key string, values ...string) (Ref, error) {
	return d.InsertDirective(len(d.entries), key, values...)
}

// InsertDirective adds a new active directive line at the given position
// (0 inserts at the top, Len() appends).
func (d *Document) InsertDirective(at int, key string, values ...string) (Ref, error) {
	if err := validateTokens(key, values); err != nil {
		return 0, err
	}
	if at < 0 || at > len(d.entries) {
		return 0, fmt.Errorf("insert position %d out of range: %w", at, ErrInvalidOperation)
	}
	e := &Entry{
		ref:    d.takeRef(),
		kind:   KindDirective,
		key:    key,
		values: cloneValues(values),
		dirty:  true,
	}
	d.entries = append(d.entries, nil)
	copy(d.entries[at+1:], d.entries[at:])
	d.entries[at] = e
	return e.ref, nil
}

// EditDirective replaces the key and values of the referenced directive.
// The target is located by reference, not by key, since keys may repeat.
func (d *Document) EditDirective(ref Ref, key string, values ...string) error {
	e, err := d.resolve(ref)
	if err != nil {
		return err
	}
	if !e.IsDirective() {
		return fmt.Errorf("cannot edit %s entry: %w", e.kind, ErrInvalidOperation)
	}
	if err := validateTokens(key, values); err != nil {
		return err
	}
	e.key = key
	e.values = cloneValues(values)
	e.dirty = true
	return nil
}

// RemoveEntry deletes exactly the referenced line entry. Siblings with
// the same key are never merged or touched.
func (d *Document) RemoveEntry(ref Ref) error {
	i := d.indexOf(ref)
	if i < 0 {
		return fmt.Errorf("ref %d: %w", ref, ErrEntryNotFound)
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	return nil
}

// ToggleComment flips a directive between enabled and commented-out,
// preserving its key and values either way. Plain comments and blank
// lines do not participate in this state machine.
func (d *Document) ToggleComment(ref Ref) error {
	e, err := d.resolve(ref)
	if err != nil {
		return err
	}
	switch e.kind {
	case KindDirective:
		e.kind = KindCommentedDirective
	case KindCommentedDirective:
		e.kind = KindDirective
	default:
		return fmt.Errorf("cannot toggle %s entry: %w", e.kind, ErrInvalidOperation)
	}
	e.dirty = true
	return nil
}

// resolve maps a Ref to its entry or reports ErrEntryNotFound.
func (d *Document) resolve(ref Ref) (*Entry, error) {
	e, ok := d.Entry(ref)
	if !ok {
		return nil, fmt.Errorf("ref %d: %w", ref, ErrEntryNotFound)
	}
	return e, nil
}

func (d *Document) indexOf(ref Ref) int {
	for i, e := range d.entries {
		if e.ref == ref {
			return i
		}
	}
	return -1
}

func (d *Document) takeRef() Ref {
	if d.nextRef == 0 {
		d.nextRef = 1
	}
	ref := d.nextRef
	d.nextRef++
	return ref
}

// append is used by the parser, which classifies lines itself.
func (d *Document) append(e *Entry) {
	e.ref = d.takeRef()
	d.entries = append(d.entries, e)
}

// validateTokens rejects keys and values that cannot survive a
// serialize/parse round trip as a single line.
func validateTokens(key string, values []string) error {
	if key == "" {
		return fmt.Errorf("empty key: %w", ErrInvalidValue)
	}
	if strings.ContainsAny(key, " \t\n\r") {
		return fmt.Errorf("key %q contains whitespace: %w", key, ErrInvalidValue)
	}
	if strings.HasPrefix(key, "#") {
		return fmt.Errorf("key %q starts with a comment marker: %w", key, ErrInvalidValue)
	}
	for _, v := range values {
		if strings.ContainsAny(v, "\n\r") {
			return fmt.Errorf("value %q contains a newline: %w", v, ErrInvalidValue)
		}
	}
	return nil
}

func cloneValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
