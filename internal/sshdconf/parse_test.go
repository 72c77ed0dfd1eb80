// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import (
	"errors"
	"strings"
	"testing"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		kind   LineKind
		key    string
		values []string
	}{
		{"simple directive", "Port 22", KindDirective, "Port", []string{"22"}},
		{"directive no value", "UsePAM", KindDirective, "UsePAM", nil},
		{"directive multiple values", "AllowUsers alice bob", KindDirective, "AllowUsers", []string{"alice", "bob"}},
		{"indented directive", "\tPermitRootLogin no", KindDirective, "PermitRootLogin", []string{"no"}},
		{"commented directive", "#PermitRootLogin yes", KindCommentedDirective, "PermitRootLogin", []string{"yes"}},
		{"commented directive with space", "# PasswordAuthentication no", KindCommentedDirective, "PasswordAuthentication", []string{"no"}},
		{"double hash stays comment", "##PermitRootLogin yes", KindComment, "", nil},
		{"prose comment", "# the default is commented out below", KindComment, "", nil},
		{"plain word comment", "# comment", KindComment, "", nil},
		{"comment starting with digit", "# 22 is the default port", KindComment, "", nil},
		{"comment starting with punctuation", "#!/bin/sh", KindComment, "", nil},
		{"bare hash", "#", KindComment, "", nil},
		{"blank", "", KindBlank, "", nil},
		{"whitespace only", "   \t", KindBlank, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.line + "\n"))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if doc.Len() != 1 {
				t.Fatalf("expected 1 entry, got %d", doc.Len())
			}
			e := doc.Entries()[0]
			if e.Kind() != tt.kind {
				t.Errorf("kind = %s, want %s", e.Kind(), tt.kind)
			}
			if e.Key() != tt.key {
				t.Errorf("key = %q, want %q", e.Key(), tt.key)
			}
			if got := strings.Join(e.Values(), "|"); got != strings.Join(tt.values, "|") {
				t.Errorf("values = %v, want %v", e.Values(), tt.values)
			}
			if e.Raw() != tt.line {
				t.Errorf("raw = %q, want %q", e.Raw(), tt.line)
			}
			if e.Dirty() {
				t.Error("freshly parsed entry must not be dirty")
			}
		})
	}
}

func TestParseScenario(t *testing.T) {
	input := "Port 22\n#PermitRootLogin yes\n\n# comment\n"
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	wantKinds := []LineKind{KindDirective, KindCommentedDirective, KindBlank, KindComment}
	if doc.Len() != len(wantKinds) {
		t.Fatalf("expected %d entries, got %d", len(wantKinds), doc.Len())
	}
	for i, e := range doc.Entries() {
		if e.Kind() != wantKinds[i] {
			t.Errorf("entry %d: kind = %s, want %s", i, e.Kind(), wantKinds[i])
		}
	}
	if e := doc.Entries()[1]; e.Key() != "PermitRootLogin" || strings.Join(e.Values(), " ") != "yes" {
		t.Errorf("entry 1: got key=%q values=%v", e.Key(), e.Values())
	}
}

func TestParseRoundTripIdentity(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"single newline", "\n"},
		{"no trailing newline", "Port 22"},
		{"trailing newline", "Port 22\n"},
		{"mixed content", "# OpenSSH server config\n\nPort 22\nPort 2222\n#PermitRootLogin yes\n\tListenAddress 0.0.0.0   # inline note\n"},
		{"weird spacing preserved", "Port\t 22 \n   \n##  banner ##\n"},
		{"crlf kept in raw", "Port 22\r\nUsePAM yes\r\n"},
		{"trailing blank lines", "Port 22\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := string(doc.Serialize()); got != tt.input {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", got, tt.input)
			}
		})
	}
}

func TestParseMalformedInput(t *testing.T) {
	_, err := Parse([]byte{0x50, 0x6f, 0x72, 0x74, 0xff, 0xfe})
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseWithCustomHeuristic(t *testing.T) {
	// The loose rule accepts lowercase prose as disabled directives.
	input := "#PermitRootLogin yes\n# lowercase words\n"
	doc, err := ParseWith(LooseHeuristic, []byte(input))
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	if got := doc.Entries()[0].Kind(); got != KindCommentedDirective {
		t.Errorf("entry 0: kind = %s, want %s", got, KindCommentedDirective)
	}
	if got := doc.Entries()[1].Kind(); got != KindCommentedDirective {
		t.Errorf("entry 1: kind = %s, want %s", got, KindCommentedDirective)
	}
	// A custom heuristic must not cost round-trip fidelity.
	if got := string(doc.Serialize()); got != input {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestParseUnknownKeywordsPreserved(t *testing.T) {
	input := "FrobnicateWidgets yes\n"
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("unknown keyword must not fail parse: %v", err)
	}
	e := doc.Entries()[0]
	if e.Kind() != KindDirective || e.Key() != "FrobnicateWidgets" {
		t.Errorf("unexpected entry: kind=%s key=%q", e.Kind(), e.Key())
	}
}
