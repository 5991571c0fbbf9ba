package blocks

import "testing"

func TestParseHTMLBlock(t *testing.T) {
	text := "before\n<!-- repo:block:alpha -->\nline one\nline two\n<!-- /repo:block:alpha -->\nafter\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	b := res.Blocks[0]
	if b.ID != "alpha" {
		t.Errorf("id = %q, want alpha", b.ID)
	}
	if b.Content != "line one\nline two" {
		t.Errorf("content = %q", b.Content)
	}
	if b.StartLine != 2 || b.EndLine != 5 {
		t.Errorf("lines = %d..%d, want 2..5", b.StartLine, b.EndLine)
	}
	if text[b.Start:b.End] != "<!-- repo:block:alpha -->\nline one\nline two\n<!-- /repo:block:alpha -->" {
		t.Errorf("span = %q", text[b.Start:b.End])
	}
}

func TestParseHashBlock(t *testing.T) {
	text := "# repo:block:cfg\nexport FOO=1\n# /repo:block:cfg\n"
	res := Parse(text, StyleHash)
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if got := res.Blocks[0].Content; got != "export FOO=1" {
		t.Errorf("content = %q", got)
	}
}

func TestParseMultipleBlocks(t *testing.T) {
	text := "<!-- repo:block:a -->\nA\n<!-- /repo:block:a -->\n\n<!-- repo:block:b -->\nB\n<!-- /repo:block:b -->\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(res.Blocks))
	}
	if res.Blocks[0].ID != "a" || res.Blocks[1].ID != "b" {
		t.Errorf("ids = %q, %q", res.Blocks[0].ID, res.Blocks[1].ID)
	}
}

func TestParseUnclosedOmitted(t *testing.T) {
	text := "<!-- repo:block:open -->\nno close here\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 0 {
		t.Fatalf("blocks = %d, want 0", len(res.Blocks))
	}
	if res.OpenCount != 1 || res.CloseCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", res.OpenCount, res.CloseCount)
	}
}

func TestParseOrphanCloseIgnored(t *testing.T) {
	text := "content\n<!-- /repo:block:ghost -->\nmore\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 0 {
		t.Fatalf("blocks = %d, want 0", len(res.Blocks))
	}
	if res.CloseCount != 1 {
		t.Errorf("close count = %d, want 1", res.CloseCount)
	}
}

func TestParseMismatchedIDsUnpaired(t *testing.T) {
	text := "<!-- repo:block:a -->\nX\n<!-- /repo:block:b -->\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 0 {
		t.Fatalf("blocks = %d, want 0", len(res.Blocks))
	}
	if res.OpenCount != 1 || res.CloseCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", res.OpenCount, res.CloseCount)
	}
}

func TestParseSameIDNestingFirstCloseWins(t *testing.T) {
	text := "<!-- repo:block:x -->\nouter\n<!-- repo:block:x -->\ninner\n<!-- /repo:block:x -->\ntail\n<!-- /repo:block:x -->\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if got := res.Blocks[0].Content; got != "outer\n<!-- repo:block:x -->\ninner" {
		t.Errorf("content = %q", got)
	}
}

func TestParseDuplicateIDsIndependent(t *testing.T) {
	text := "<!-- repo:block:d -->\nfirst\n<!-- /repo:block:d -->\n<!-- repo:block:d -->\nsecond\n<!-- /repo:block:d -->\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(res.Blocks))
	}
	if res.Blocks[0].Content != "first" || res.Blocks[1].Content != "second" {
		t.Errorf("contents = %q, %q", res.Blocks[0].Content, res.Blocks[1].Content)
	}
}

func TestParseHashMarkerMidLineIgnored(t *testing.T) {
	text := "echo '# repo:block:fake'\n# repo:block:real\nbody\n# /repo:block:real\n"
	res := Parse(text, StyleHash)
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if res.Blocks[0].ID != "real" {
		t.Errorf("id = %q, want real", res.Blocks[0].ID)
	}
}

func TestParseEmptyContent(t *testing.T) {
	text := "<!-- repo:block:e -->\n<!-- /repo:block:e -->\n"
	res := Parse(text, StyleHTML)
	if len(res.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(res.Blocks))
	}
	if res.Blocks[0].Content != "" {
		t.Errorf("content = %q, want empty", res.Blocks[0].Content)
	}
}

func TestFind(t *testing.T) {
	text := "<!-- repo:block:a -->\nA\n<!-- /repo:block:a -->\n<!-- repo:block:a -->\nA2\n<!-- /repo:block:a -->\n"
	b, ok, err := Find(text, "a", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("block not found")
	}
	if b.Content != "A" {
		t.Errorf("content = %q, want first match", b.Content)
	}

	if _, ok, err := Find(text, "missing", StyleHTML); err != nil || ok {
		t.Errorf("missing id: ok=%v err=%v", ok, err)
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"a", "A-1", "snake_case", "0"} {
		if !ValidID(id) {
			t.Errorf("ValidID(%q) = false", id)
		}
	}
	for _, id := range []string{"", "has space", "dot.ted", "a/b", "é"} {
		if ValidID(id) {
			t.Errorf("ValidID(%q) = true", id)
		}
	}
}
