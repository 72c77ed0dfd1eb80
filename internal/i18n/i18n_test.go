// Copyright (c) 2026 Sentinel Team
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitAndGetLang(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("form.submit"); got != "Submit" {
		t.Fatalf("expected 'Submit', got %q", got)
	}

	// fmt-style formatting via args
	got := T("editor.status_saved", "/etc/ssh/sshd_config")
	if got != "Saved /etc/ssh/sshd_config." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("form.submit"); got != "Übernehmen" {
		t.Fatalf("expected German 'Übernehmen', got %q", got)
	}
	SetLang("en")
}

func TestT_UnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected fallback to ID, got %q", got)
	}
}

func TestT_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	Init("fr")
	if got := T("form.submit"); got != "Submit" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	Init("en")
}
