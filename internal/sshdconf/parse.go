// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Heuristic decides whether the first token of a '#'-stripped comment
// line looks like a directive keyword, i.e. the line is a disabled
// directive rather than prose. The boundary between "commented-out
// directive" and "comment that happens to start with a word" is
// inherently fuzzy, so callers with stricter needs can supply their own.
type Heuristic func(token string) bool

// DefaultHeuristic treats a token as a directive keyword when it starts
// with an uppercase letter and contains no further comment marker.
// sshd_config keywords are written CamelCase, so this keeps lowercase
// prose like "# see the manual" out of the disabled-directive bucket.
func DefaultHeuristic(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsUpper(r) && !strings.ContainsRune(token, '#')
}

// LooseHeuristic accepts any leading letter. It mirrors what the stock
// tooling does and misfiles prose comments as disabled directives; it is
// offered for callers who prefer recall over precision.
func LooseHeuristic(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsLetter(r) && !strings.ContainsRune(token, '#')
}

// Parse reads sshd_config-style text into a Document. Unknown keywords
// are preserved as opaque directives, never rejected; the only parse
// failure is input that is not valid text (ErrMalformedInput).
func Parse(data []byte) (*Document, error) {
	return ParseWith(DefaultHeuristic, data)
}

// ParseWith is Parse with a caller-supplied commented-directive heuristic.
func ParseWith(h Heuristic, data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8: %w", ErrMalformedInput)
	}
	if h == nil {
		h = DefaultHeuristic
	}

	d := &Document{nextRef: 1}
	text := string(data)
	if text == "" {
		return d, nil
	}

	d.trailingNewline = strings.HasSuffix(text, "\n")
	if d.trailingNewline {
		text = strings.TrimSuffix(text, "\n")
	}

	for _, line := range strings.Split(text, "\n") {
		d.append(classify(h, line))
	}
	return d, nil
}

// classify tags one physical line. The raw text is kept verbatim for
// every kind so untouched lines serialize byte-identically.
func classify(h Heuristic, line string) *Entry {
	stripped := strings.TrimSpace(line)

	if stripped == "" {
		return &Entry{kind: KindBlank, raw: line}
	}

	if strings.HasPrefix(stripped, "#") {
		// A single '#' is stripped; "##key" keeps its marker and fails
		// the heuristic, staying a plain comment.
		rest := strings.TrimSpace(stripped[1:])
		fields := strings.Fields(rest)
		if len(fields) > 0 && h(fields[0]) {
			return &Entry{
				kind:   KindCommentedDirective,
				key:    fields[0],
				values: cloneValues(fields[1:]),
				raw:    line,
			}
		}
		return &Entry{kind: KindComment, raw: line}
	}

	fields := strings.Fields(stripped)
	return &Entry{
		kind:   KindDirective,
		key:    fields[0],
		values: cloneValues(fields[1:]),
		raw:    line,
	}
}
