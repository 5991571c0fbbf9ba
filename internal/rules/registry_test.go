package rules

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/repoconf-labs/repoconf/internal/storage"
)

func tempRegistry(t *testing.T) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules", "registry.toml")
	g, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLoadMissingIsNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddGetRoundTrip(t *testing.T) {
	g := tempRegistry(t)
	r, err := NewRule("no-emoji", "Never use emoji in output.", []string{"style"})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Add(r); err != nil {
		t.Fatal(err)
	}
	if err := g.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(g.Path())
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Get("no-emoji")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != r.Content || got.ContentHash != r.ContentHash {
		t.Errorf("loaded rule = %+v, want %+v", got, r)
	}
	if got.Drifted() {
		t.Error("fresh rule reports drift")
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	g := tempRegistry(t)
	r, _ := NewRule("dup", "x", nil)
	if err := g.Add(r); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(r); !errors.Is(err, ErrRuleExists) {
		t.Errorf("err = %v, want ErrRuleExists", err)
	}
}

func TestAddInvalidID(t *testing.T) {
	g := tempRegistry(t)
	if err := g.Add(Rule{ID: "bad id"}); err == nil {
		t.Error("want error for invalid id")
	}
}

func TestUpdateRefreshesHash(t *testing.T) {
	g := tempRegistry(t)
	r, _ := NewRule("r", "old", nil)
	if err := g.Add(r); err != nil {
		t.Fatal(err)
	}
	changed, err := g.Update("r", "new")
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("update with new content reported unchanged")
	}
	got, _ := g.Get("r")
	if got.ContentHash != storage.ChecksumString("new") {
		t.Errorf("hash = %s", got.ContentHash)
	}

	changed, err = g.Update("r", "new")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("identical update reported changed")
	}
}

func TestRemove(t *testing.T) {
	g := tempRegistry(t)
	r, _ := NewRule("r", "x", nil)
	if err := g.Add(r); err != nil {
		t.Fatal(err)
	}
	if err := g.Remove("r"); err != nil {
		t.Fatal(err)
	}
	if err := g.Remove("r"); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("err = %v, want ErrRuleNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	g := tempRegistry(t)
	for _, id := range []string{"zeta", "alpha", "mid"} {
		r, _ := NewRule(id, "c", nil)
		if err := g.Add(r); err != nil {
			t.Fatal(err)
		}
	}
	list := g.List()
	if len(list) != 3 || list[0].ID != "alpha" || list[1].ID != "mid" || list[2].ID != "zeta" {
		t.Errorf("list = %v", list)
	}
}

func TestListTagged(t *testing.T) {
	g := tempRegistry(t)
	a, _ := NewRule("a", "x", []string{"python"})
	b, _ := NewRule("b", "y", []string{"go"})
	if err := g.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(b); err != nil {
		t.Fatal(err)
	}
	tagged := g.ListTagged("go")
	if len(tagged) != 1 || tagged[0].ID != "b" {
		t.Errorf("tagged = %v", tagged)
	}
	if len(g.ListTagged("")) != 2 {
		t.Error("empty tag should match all")
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.toml")
	content := "version = \"1\"\nfuture_field = true\n\n[rules.r]\nid = \"r\"\ncontent = \"c\"\ncontent_hash = \"" +
		storage.ChecksumString("c") + "\"\n"
	if err := storage.WriteText(path, content); err != nil {
		t.Fatal(err)
	}
	g, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Get("r"); err != nil {
		t.Error("rule lost on load")
	}
}
