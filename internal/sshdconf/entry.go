// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import "strings"

// LineKind classifies a single physical line of an sshd_config file.
type LineKind string

const (
	// KindDirective is an active configuration line of the form `key value...`.
	KindDirective LineKind = "directive"

	// KindCommentedDirective is a directive disabled by a leading '#'. It
	// keeps its key and values so it can be re-enabled without re-entry.
	KindCommentedDirective LineKind = "commented_directive"

	// KindComment is a free-text comment that does not look like a disabled
	// directive.
	KindComment LineKind = "comment"

	// KindBlank is an empty or whitespace-only line.
	KindBlank LineKind = "blank"
)

// Ref is a stable handle to an entry within a Document. Refs survive
// unrelated mutations; a Ref whose entry has been removed yields
// ErrEntryNotFound rather than resolving to a neighbor.
type Ref int

// Entry is one classified, order-preserving record per physical line.
// The original line text is retained verbatim so that untouched lines
// serialize byte-identically; the structured key/values view is only
// trusted for serialization once the entry has been edited.
type Entry struct {
	ref    Ref
	kind   LineKind
	key    string
	values []string
	raw    string
	dirty  bool
}

// Ref returns the stable handle for this entry.
func (e *Entry) Ref() Ref { return e.ref }

// Kind returns the line classification.
func (e *Entry) Kind() LineKind { return e.kind }

// Key returns the directive keyword as written (case preserved). It is
// empty for comments and blank lines.
func (e *Entry) Key() string { return e.key }

// Values returns a copy of the directive's value tokens in order.
func (e *Entry) Values() []string {
	if len(e.values) == 0 {
		return nil
	}
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// Raw returns the original line text as read from the source.
func (e *Entry) Raw() string { return e.raw }

// Dirty reports whether the entry has been edited since parsing. Dirty
// entries are re-rendered from key/values on serialization.
func (e *Entry) Dirty() bool { return e.dirty }

// Enabled reports whether the entry is an active directive.
func (e *Entry) Enabled() bool { return e.kind == KindDirective }

// IsDirective reports whether the entry carries a key/values payload,
// i.e. it is an active or commented-out directive.
func (e *Entry) IsDirective() bool {
	return e.kind == KindDirective || e.kind == KindCommentedDirective
}

// HasKey reports whether the entry is a directive with the given keyword,
// compared case-insensitively (sshd_config keywords are case-insensitive).
func (e *Entry) HasKey(key string) bool {
	return e.IsDirective() && strings.EqualFold(e.key, key)
}

// render produces the canonical text for a dirty entry. Non-directive
// kinds fall back to the raw line; they are never marked dirty by the
// editor operations.
func (e *Entry) render() string {
	if !e.IsDirective() {
		return e.raw
	}
	line := e.key
	if len(e.values) > 0 {
		line += " " + strings.Join(e.values, " ")
	}
	if e.kind == KindCommentedDirective {
		line = "#" + line
	}
	return line
}
