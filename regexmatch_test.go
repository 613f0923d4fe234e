package headlessterm

import "testing"

func TestNewRegexCompileError(t *testing.T) {
	if _, err := NewRegex("(unclosed", RegexPurposeMatch, 0); err == nil {
		t.Error("expected a compile error for an unbalanced group")
	}
}

func TestMatchTableCheckAtFindsURL(t *testing.T) {
	re, err := NewRegex(`https?://\S+`, RegexPurposeMatch, 0)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	table := NewMatchTable()
	tag := table.Add(re, true)

	extract := func(row int) (string, []Position) {
		text := "see https://example.com/path here"
		backmap := make([]Position, len([]rune(text)))
		for i := range backmap {
			backmap[i] = Position{Row: row, Col: i}
		}
		return text, backmap
	}

	result, ok := table.CheckAt(0, 6, extract) // inside "https://..."
	if !ok {
		t.Fatal("expected a match covering column 6")
	}
	if result.Tag != tag {
		t.Errorf("expected tag %d, got %d", tag, result.Tag)
	}
	if result.Text != "https://example.com/path" {
		t.Errorf("unexpected matched text: %q", result.Text)
	}
}

func TestMatchTableCheckAtOutsideSpan(t *testing.T) {
	re, err := NewRegex(`https?://\S+`, RegexPurposeMatch, 0)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	table := NewMatchTable()
	table.Add(re, true)

	extract := func(row int) (string, []Position) {
		text := "see https://example.com here"
		backmap := make([]Position, len([]rune(text)))
		for i := range backmap {
			backmap[i] = Position{Row: row, Col: i}
		}
		return text, backmap
	}

	if _, ok := table.CheckAt(0, 0, extract); ok {
		t.Error("expected no match at column 0 (\"see\")")
	}
}

func TestMatchTableRemoveInvalidatesCache(t *testing.T) {
	re, err := NewRegex(`\d+`, RegexPurposeMatch, 0)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	table := NewMatchTable()
	tag := table.Add(re, true)

	extract := func(row int) (string, []Position) {
		text := "id 42"
		backmap := make([]Position, len([]rune(text)))
		for i := range backmap {
			backmap[i] = Position{Row: row, Col: i}
		}
		return text, backmap
	}

	if _, ok := table.CheckAt(0, 3, extract); !ok {
		t.Fatal("expected a match before removal")
	}

	table.Remove(tag)

	if _, ok := table.CheckAt(0, 3, extract); ok {
		t.Error("expected no match after the regex is removed")
	}
}

func TestRegexIgnoreCase(t *testing.T) {
	re, err := NewRegex("hello", RegexPurposeMatch, RegexIgnoreCase)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	match, err := re.re.FindStringMatch("HELLO world")
	if err != nil {
		t.Fatalf("unexpected match error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a case-insensitive match")
	}
}
