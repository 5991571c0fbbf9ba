package blocks

import (
	"errors"
	"strings"
	"testing"
)

func TestUpsertAppendsToEmpty(t *testing.T) {
	out, err := Upsert("", "a", "hello", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	want := "<!-- repo:block:a -->\nhello\n<!-- /repo:block:a -->\n"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestUpsertAppendsWithSeparator(t *testing.T) {
	out, err := Upsert("existing content\n", "a", "hello", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	want := "existing content\n\n<!-- repo:block:a -->\nhello\n<!-- /repo:block:a -->\n"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestUpsertNoTrailingNewline(t *testing.T) {
	out, err := Upsert("no newline", "a", "x", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "no newline\n\n<!-- repo:block:a -->") {
		t.Errorf("out = %q", out)
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	doc := "head\n\n<!-- repo:block:a -->\nold\n<!-- /repo:block:a -->\n\ntail\n"
	out, err := Upsert(doc, "a", "new content", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	want := "head\n\n<!-- repo:block:a -->\nnew content\n<!-- /repo:block:a -->\n\ntail\n"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestUpsertIdempotent(t *testing.T) {
	out1, err := Upsert("base\n", "a", "body", StyleHash)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := Upsert(out1, "a", "body", StyleHash)
	if err != nil {
		t.Fatal(err)
	}
	if out1 != out2 {
		t.Errorf("second upsert changed document:\n%q\nvs\n%q", out1, out2)
	}
}

func TestUpsertRejectsDuplicateID(t *testing.T) {
	doc := "<!-- repo:block:d -->\n1\n<!-- /repo:block:d -->\n<!-- repo:block:d -->\n2\n<!-- /repo:block:d -->\n"
	_, err := Upsert(doc, "d", "x", StyleHTML)
	if !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("err = %v, want ErrAmbiguousID", err)
	}
}

func TestUpsertRejectsInvalidID(t *testing.T) {
	if _, err := Upsert("", "bad id", "x", StyleHTML); err == nil {
		t.Error("want error for invalid id")
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	base := "# Title\n\nSome prose.\n"
	withBlock, err := Upsert(base, "gen", "generated\nlines", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Remove(withBlock, "gen", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	if restored != base {
		t.Errorf("restored = %q, want %q", restored, base)
	}
}

func TestRemoveCycleNoWhitespaceGrowth(t *testing.T) {
	doc := "start\n"
	for i := 0; i < 5; i++ {
		var err error
		doc, err = Upsert(doc, "cyc", "payload", StyleHash)
		if err != nil {
			t.Fatal(err)
		}
		doc, err = Remove(doc, "cyc", StyleHash)
		if err != nil {
			t.Fatal(err)
		}
	}
	if doc != "start\n" {
		t.Errorf("doc after cycles = %q, want %q", doc, "start\n")
	}
}

func TestRemoveFromEmptyBase(t *testing.T) {
	doc, err := Upsert("", "only", "body", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Remove(doc, "only", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}
}

func TestRemoveMissing(t *testing.T) {
	_, err := Remove("plain text\n", "ghost", StyleHTML)
	if !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("err = %v, want ErrBlockNotFound", err)
	}
}

func TestRemoveRejectsDuplicateID(t *testing.T) {
	doc := "# repo:block:d\n1\n# /repo:block:d\n# repo:block:d\n2\n# /repo:block:d\n"
	_, err := Remove(doc, "d", StyleHash)
	if !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("err = %v, want ErrAmbiguousID", err)
	}
}

func TestRemoveMiddleBlock(t *testing.T) {
	doc := "top\n\n<!-- repo:block:mid -->\nM\n<!-- /repo:block:mid -->\n\nbottom\n"
	out, err := Remove(doc, "mid", StyleHTML)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "repo:block") {
		t.Errorf("markers survive: %q", out)
	}
	if !strings.Contains(out, "top\n") || !strings.Contains(out, "bottom\n") {
		t.Errorf("surrounding content lost: %q", out)
	}
}
