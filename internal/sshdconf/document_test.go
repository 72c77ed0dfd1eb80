// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

package sshdconf

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestAddDirective(t *testing.T) {
	doc := mustParse(t, "Port 22\n")
	ref, err := doc.AddDirective("PermitRootLogin", "no")
	if err != nil {
		t.Fatalf("AddDirective failed: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", doc.Len())
	}
	e, ok := doc.Entry(ref)
	if !ok {
		t.Fatal("added entry not resolvable by ref")
	}
	if !e.Dirty() || e.Kind() != KindDirective {
		t.Errorf("added entry: dirty=%t kind=%s", e.Dirty(), e.Kind())
	}
	if got := string(doc.Serialize()); got != "Port 22\nPermitRootLogin no\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestAddDirectiveDuplicateKeys(t *testing.T) {
	doc := mustParse(t, "")
	if _, err := doc.AddDirective("Port", "22"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := doc.AddDirective("Port", "2222"); err != nil {
		t.Fatalf("duplicate key must be permitted: %v", err)
	}
	if got := len(doc.FindByKey("port")); got != 2 {
		t.Errorf("FindByKey returned %d entries, want 2", got)
	}
	items := doc.RenderList()
	if len(items) != 2 {
		t.Fatalf("RenderList collapsed duplicates: %d items", len(items))
	}
	if items[0].DisplayValues == items[1].DisplayValues {
		t.Error("expected distinct entries for duplicate keys")
	}
}

func TestNewDocumentBuildFromScratch(t *testing.T) {
	doc := NewDocument()
	if doc.Len() != 0 {
		t.Fatalf("new document has %d entries", doc.Len())
	}
	if _, err := doc.AddDirective("Port", "22"); err != nil {
		t.Fatalf("AddDirective failed: %v", err)
	}
	if _, err := doc.AddDirective("PermitRootLogin", "no"); err != nil {
		t.Fatalf("AddDirective failed: %v", err)
	}
	if got := string(doc.Serialize()); got != "Port 22\nPermitRootLogin no\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestInsertDirective(t *testing.T) {
	doc := mustParse(t, "Port 22\nUsePAM yes\n")
	if _, err := doc.InsertDirective(1, "ListenAddress", "0.0.0.0"); err != nil {
		t.Fatalf("InsertDirective failed: %v", err)
	}
	want := "Port 22\nListenAddress 0.0.0.0\nUsePAM yes\n"
	if got := string(doc.Serialize()); got != want {
		t.Errorf("serialize = %q, want %q", got, want)
	}

	if _, err := doc.InsertDirective(99, "Port", "22"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("out-of-range insert: expected ErrInvalidOperation, got %v", err)
	}
}

func TestAddDirectiveValidation(t *testing.T) {
	doc := mustParse(t, "Port 22\n")
	tests := []struct {
		name   string
		key    string
		values []string
	}{
		{"empty key", "", nil},
		{"key with space", "Permit RootLogin", nil},
		{"key with newline", "Port\n22", nil},
		{"key with comment marker", "#Port", nil},
		{"value with newline", "Banner", []string{"/etc/issue\nPort 99"}},
		{"value with carriage return", "Banner", []string{"a\rb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := string(doc.Serialize())
			_, err := doc.AddDirective(tt.key, tt.values...)
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
			if after := string(doc.Serialize()); after != before {
				t.Errorf("failed add mutated the document: %q -> %q", before, after)
			}
		})
	}
}

func TestEditDirective(t *testing.T) {
	doc := mustParse(t, "Port 22\n#PermitRootLogin yes\n")
	target := doc.Entries()[0]
	if err := doc.EditDirective(target.Ref(), "Port", "2222"); err != nil {
		t.Fatalf("EditDirective failed: %v", err)
	}
	if got := string(doc.Serialize()); got != "Port 2222\n#PermitRootLogin yes\n" {
		t.Errorf("serialize = %q", got)
	}

	// Commented directives stay editable without being re-enabled.
	disabled := doc.Entries()[1]
	if err := doc.EditDirective(disabled.Ref(), "PermitRootLogin", "prohibit-password"); err != nil {
		t.Fatalf("edit of commented directive failed: %v", err)
	}
	if got := string(doc.Serialize()); got != "Port 2222\n#PermitRootLogin prohibit-password\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestEditDirectiveErrors(t *testing.T) {
	doc := mustParse(t, "Port 22\n\n# note\n")

	blank := doc.Entries()[1]
	if err := doc.EditDirective(blank.Ref(), "Port", "22"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("edit of blank: expected ErrInvalidOperation, got %v", err)
	}

	target := doc.Entries()[0]
	if err := doc.RemoveEntry(target.Ref()); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	// The reference is now stale.
	if err := doc.EditDirective(target.Ref(), "Port", "22"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("stale ref: expected ErrEntryNotFound, got %v", err)
	}
}

func TestRemoveEntry(t *testing.T) {
	doc := mustParse(t, "Port 22\n#PermitRootLogin yes\n\n# comment\n")
	blank := doc.Entries()[2]
	if err := doc.RemoveEntry(blank.Ref()); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	want := "Port 22\n#PermitRootLogin yes\n# comment\n"
	if got := string(doc.Serialize()); got != want {
		t.Errorf("serialize = %q, want %q", got, want)
	}

	// Removal must keep remaining relative order across a re-parse.
	again := mustParse(t, string(doc.Serialize()))
	kinds := []LineKind{KindDirective, KindCommentedDirective, KindComment}
	for i, e := range again.Entries() {
		if e.Kind() != kinds[i] {
			t.Errorf("entry %d: kind = %s, want %s", i, e.Kind(), kinds[i])
		}
	}

	if err := doc.RemoveEntry(blank.Ref()); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("double remove: expected ErrEntryNotFound, got %v", err)
	}
}

func TestRemoveOnlyDeletesOneSibling(t *testing.T) {
	doc := mustParse(t, "Port 22\nPort 2222\nPort 22022\n")
	if err := doc.RemoveEntry(doc.Entries()[1].Ref()); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if got := string(doc.Serialize()); got != "Port 22\nPort 22022\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestToggleComment(t *testing.T) {
	doc := mustParse(t, "Port 22\n#PermitRootLogin yes\n\n# comment\n")

	// Disabled -> enabled restores the prior configuration.
	disabled := doc.Entries()[1]
	if err := doc.ToggleComment(disabled.Ref()); err != nil {
		t.Fatalf("ToggleComment failed: %v", err)
	}
	if disabled.Kind() != KindDirective {
		t.Errorf("kind = %s, want %s", disabled.Kind(), KindDirective)
	}
	want := "Port 22\nPermitRootLogin yes\n\n# comment\n"
	if got := string(doc.Serialize()); got != want {
		t.Errorf("serialize = %q, want %q", got, want)
	}

	// Enabled -> disabled keeps key and values for later re-enabling.
	if err := doc.ToggleComment(disabled.Ref()); err != nil {
		t.Fatalf("ToggleComment back failed: %v", err)
	}
	if disabled.Kind() != KindCommentedDirective {
		t.Errorf("kind = %s, want %s", disabled.Kind(), KindCommentedDirective)
	}
	if disabled.Key() != "PermitRootLogin" || strings.Join(disabled.Values(), " ") != "yes" {
		t.Errorf("toggle lost payload: key=%q values=%v", disabled.Key(), disabled.Values())
	}
}

func TestToggleCommentIdempotentPair(t *testing.T) {
	doc := mustParse(t, "PasswordAuthentication no\n")
	e := doc.Entries()[0]
	key, values := e.Key(), strings.Join(e.Values(), " ")
	for i := 0; i < 2; i++ {
		if err := doc.ToggleComment(e.Ref()); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}
	if e.Key() != key || strings.Join(e.Values(), " ") != values {
		t.Errorf("double toggle changed payload: key=%q values=%v", e.Key(), e.Values())
	}
	if e.Kind() != KindDirective {
		t.Errorf("double toggle changed kind: %s", e.Kind())
	}
}

func TestToggleCommentNonDirective(t *testing.T) {
	doc := mustParse(t, "\n# just a note\n")
	for i, e := range doc.Entries() {
		before := string(doc.Serialize())
		if err := doc.ToggleComment(e.Ref()); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("entry %d: expected ErrInvalidOperation, got %v", i, err)
		}
		if after := string(doc.Serialize()); after != before {
			t.Errorf("entry %d: failed toggle mutated document", i)
		}
	}
}

func TestFindByKeyCaseInsensitive(t *testing.T) {
	doc := mustParse(t, "PORT 22\nport 2222\n#Port 22022\n# note\n")
	matches := doc.FindByKey("Port")
	if len(matches) != 3 {
		t.Fatalf("FindByKey returned %d matches, want 3", len(matches))
	}
	// Case is preserved as written.
	if matches[0].Key() != "PORT" || matches[1].Key() != "port" {
		t.Errorf("key case not preserved: %q, %q", matches[0].Key(), matches[1].Key())
	}
}

func TestIncludes(t *testing.T) {
	doc := mustParse(t, "Include /etc/ssh/sshd_config.d/*.conf\n#Include /tmp/x\ninclude other.conf\n")
	incs := doc.Includes()
	if len(incs) != 2 {
		t.Fatalf("Includes returned %d entries, want 2", len(incs))
	}
	if got := incs[0].Values()[0]; got != "/etc/ssh/sshd_config.d/*.conf" {
		t.Errorf("include path = %q", got)
	}
}

func TestRefsSurviveUnrelatedMutations(t *testing.T) {
	doc := mustParse(t, "Port 22\nUsePAM yes\nBanner none\n")
	banner := doc.Entries()[2]
	if err := doc.RemoveEntry(doc.Entries()[0].Ref()); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if err := doc.EditDirective(banner.Ref(), "Banner", "/etc/issue.net"); err != nil {
		t.Fatalf("ref invalidated by unrelated removal: %v", err)
	}
	if got := string(doc.Serialize()); got != "UsePAM yes\nBanner /etc/issue.net\n" {
		t.Errorf("serialize = %q", got)
	}
}
