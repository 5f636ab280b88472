package i18n

import (
	"strings"
	"testing"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"pl", LocalePolish},
		{"pl-PL,pl;q=0.9,en;q=0.8", LocalePolish},
		{"en-US,en;q=0.9", LocaleEnglish},
		{"en-GB", LocaleEnglish},
		{"de-DE,de;q=0.9", LocalePolish},
		{"", LocalePolish},
		{"not a header", LocalePolish},
	}
	for _, tt := range tests {
		if got := Negotiate(tt.header); got != tt.want {
			t.Errorf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"pl", LocalePolish},
		{"pl-PL", LocalePolish},
		{"en", LocaleEnglish},
		{"en-US", LocaleEnglish},
		{"fr", LocalePolish},
		{"??", LocalePolish},
	}
	for _, tt := range tests {
		if got := Normalize(tt.locale); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(LocalePolish, "idea_required"); got != "Wpisz najpierw swój pomysł na obraz." {
		t.Fatalf("pl message = %q", got)
	}
	if got := T(LocaleEnglish, "idea_required"); got != "Enter your image idea first." {
		t.Fatalf("en message = %q", got)
	}
	// Unknown locales read the Polish table.
	if got := T("de", "idea_required"); got != T(LocalePolish, "idea_required") {
		t.Fatalf("fallback message = %q", got)
	}
	// Unknown keys surface as themselves.
	if got := T(LocalePolish, "no_such_key"); got != "no_such_key" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestTFormatsArgs(t *testing.T) {
	got := T(LocaleEnglish, "questions_count_mismatch", 11, 9)
	if !strings.Contains(got, "11") || !strings.Contains(got, "9") {
		t.Fatalf("counts missing from message: %q", got)
	}
}

func TestCatalogsCoverTheSameKeys(t *testing.T) {
	for key := range messages[LocalePolish] {
		if _, ok := messages[LocaleEnglish][key]; !ok {
			t.Errorf("key %q missing from the English catalog", key)
		}
	}
	for key := range messages[LocaleEnglish] {
		if _, ok := messages[LocalePolish][key]; !ok {
			t.Errorf("key %q missing from the Polish catalog", key)
		}
	}
}
