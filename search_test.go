package headlessterm

import "testing"

func TestRegisterAndCheckMatch(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("visit https://example.com/path today")

	tag, err := term.RegisterMatch(`https?://\S+`, 0)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	result, ok := term.CheckMatchAt(0, 9) // inside the URL
	if !ok {
		t.Fatal("expected a match at a column inside the URL")
	}
	if result.Tag != tag {
		t.Errorf("expected tag %d, got %d", tag, result.Tag)
	}
	if result.Text != "https://example.com/path" {
		t.Errorf("unexpected match text: %q", result.Text)
	}
}

func TestCheckMatchAtOutsideAnyRegisteredSpan(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("visit https://example.com today")

	if _, err := term.RegisterMatch(`https?://\S+`, 0); err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	if _, ok := term.CheckMatchAt(0, 0); ok {
		t.Error("expected no match at column 0 (\"visit\")")
	}
}

func TestUnregisterMatchStopsMatching(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("https://example.com")

	tag, err := term.RegisterMatch(`https?://\S+`, 0)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	term.UnregisterMatch(tag)

	if _, ok := term.CheckMatchAt(0, 0); ok {
		t.Error("expected no match after unregistering the only pattern")
	}
}

func TestSearchRegexForward(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("no match on row zero")

	span, err := term.SearchRegex(`zero`, 0, Position{Row: 0, Col: 0}, SearchForward, false)
	if err != nil {
		t.Fatalf("unexpected search error: %v", err)
	}
	if span == nil {
		t.Fatal("expected a match for \"zero\"")
	}
	if span.StartRow != 0 {
		t.Errorf("expected match on row 0, got %d", span.StartRow)
	}
}

func TestSearchRegexNoMatchWithoutWrap(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("nothing interesting here")

	span, err := term.SearchRegex(`doesnotexist`, 0, Position{Row: 0, Col: 0}, SearchForward, false)
	if err != nil {
		t.Fatalf("unexpected search error: %v", err)
	}
	if span != nil {
		t.Errorf("expected no match, got %+v", span)
	}
}
