package clipboard

import "testing"

func TestParseColorText(t *testing.T) {
	got, err := parseColorText("  #AABBCC\nignored")
	if err != nil {
		t.Fatalf("parseColorText: %v", err)
	}
	if got != "#aabbcc" {
		t.Fatalf("got %q", got)
	}
	if _, err := parseColorText("   "); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := parseColorText("hello"); err == nil {
		t.Fatal("expected error for non-colour text")
	}
}
