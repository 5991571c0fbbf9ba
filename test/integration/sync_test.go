//go:build integration

package integration_test

import (
	"strings"
	"testing"

	"github.com/repoconf-labs/repoconf/internal/engine"
)

// Fresh project, one rule, one tool: sync creates the artifact with exactly
// one managed block and an immediate check is clean.
func TestFreshProjectConverges(t *testing.T) {
	env := setupProject(t, "cursor")
	env.addRule(t, "coding-standards", "Use 2-space indentation")

	report, err := env.engine(t).Sync(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Succeeded() {
		t.Fatalf("sync failed: %+v", report.Items)
	}

	content := env.read(t, ".cursorrules")
	if countOccurrences(content, "<!-- repo:block:coding-standards -->") != 1 {
		t.Errorf("expected exactly one managed block:\n%s", content)
	}
	if !strings.Contains(content, "Use 2-space indentation") {
		t.Errorf("rule content missing:\n%s", content)
	}

	check, err := env.engine(t).Check(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !check.Clean() {
		t.Errorf("post-sync check not clean: %+v", check.Items)
	}
}

// Hand-written text around the managed block survives a rule update.
func TestHandWrittenContentSurvivesRuleUpdate(t *testing.T) {
	env := setupProject(t, "cursor")
	env.addRule(t, "coding-standards", "Use 2-space indentation")
	if _, err := env.engine(t).Sync(engine.SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	env.write(t, ".cursorrules", env.read(t, ".cursorrules")+"\n# my notes\n")

	if _, err := env.Registry.Update("coding-standards", "Use 4-space indentation"); err != nil {
		t.Fatal(err)
	}
	if err := env.Registry.Save(); err != nil {
		t.Fatal(err)
	}

	report, err := env.engine(t).Sync(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Succeeded() {
		t.Fatalf("sync failed: %+v", report.Items)
	}

	content := env.read(t, ".cursorrules")
	if !strings.Contains(content, "Use 4-space indentation") {
		t.Errorf("block not updated:\n%s", content)
	}
	if strings.Contains(content, "Use 2-space indentation") {
		t.Errorf("old block content survives:\n%s", content)
	}
	if !strings.Contains(content, "# my notes") {
		t.Errorf("hand-written notes lost:\n%s", content)
	}
}

// Repeated sync produces byte-identical files.
func TestSyncIdempotentAcrossInvocations(t *testing.T) {
	env := setupProject(t, "cursor", "claude", "copilot")
	env.addRule(t, "a", "First rule")
	env.addRule(t, "b", "Second rule")

	if _, err := env.engine(t).Sync(engine.SyncOptions{}); err != nil {
		t.Fatal(err)
	}
	snapshots := map[string]string{}
	for _, rel := range []string{".cursorrules", "CLAUDE.md", ".github/copilot-instructions.md"} {
		snapshots[rel] = env.read(t, rel)
	}

	report, err := env.engine(t).Sync(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c := report.Counts(); c.Fixed != 0 {
		t.Errorf("second sync fixed %d projections", c.Fixed)
	}
	for rel, before := range snapshots {
		if env.read(t, rel) != before {
			t.Errorf("%s changed on idempotent sync", rel)
		}
	}
}

// External drift is detected by a fresh invocation and repaired by fix.
func TestDriftDetectedAndRepaired(t *testing.T) {
	env := setupProject(t, "claude")
	env.addRule(t, "style", "Prefer guard clauses")
	if _, err := env.engine(t).Sync(engine.SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	tampered := strings.Replace(env.read(t, "CLAUDE.md"), "guard clauses", "deep nesting", 1)
	env.write(t, "CLAUDE.md", tampered)

	check, err := env.engine(t).Check(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c := check.Counts(); c.Drifted != 1 {
		t.Fatalf("drift not detected: %+v", check.Items)
	}

	fixReport, err := env.engine(t).Fix(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c := fixReport.Counts(); c.Fixed != 1 {
		t.Errorf("fix counts = %+v, want one fixed", c)
	}
	if !strings.Contains(env.read(t, "CLAUDE.md"), "guard clauses") {
		t.Error("fix did not restore content")
	}
}

// Removing a rule cleans its blocks out of every tool artifact on the next
// sync.
func TestRemovedRuleCleansUp(t *testing.T) {
	env := setupProject(t, "cursor", "claude")
	env.addRule(t, "keep", "Keep this")
	env.addRule(t, "drop", "Drop this")
	if _, err := env.engine(t).Sync(engine.SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	if err := env.Registry.Remove("drop"); err != nil {
		t.Fatal(err)
	}
	if err := env.Registry.Save(); err != nil {
		t.Fatal(err)
	}

	report, err := env.engine(t).Sync(engine.SyncOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Succeeded() {
		t.Fatalf("sync failed: %+v", report.Items)
	}

	for _, rel := range []string{".cursorrules", "CLAUDE.md"} {
		content := env.read(t, rel)
		if strings.Contains(content, "Drop this") {
			t.Errorf("%s still contains removed rule:\n%s", rel, content)
		}
		if !strings.Contains(content, "Keep this") {
			t.Errorf("%s lost surviving rule:\n%s", rel, content)
		}
	}
}

// The tool filter limits writes and the dry run never touches disk.
func TestFilterAndDryRun(t *testing.T) {
	env := setupProject(t, "cursor", "claude")
	env.addRule(t, "r", "content")

	report, err := env.engine(t).Sync(engine.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !report.DryRun {
		t.Error("report not marked dry run")
	}
	if _, err := env.engine(t).Check(engine.SyncOptions{}); err != nil {
		t.Fatal(err)
	}

	if _, err := env.engine(t).Sync(engine.SyncOptions{Tools: []string{"claude"}}); err != nil {
		t.Fatal(err)
	}
	env.read(t, "CLAUDE.md")
	if _, err := env.engine(t).Check(engine.SyncOptions{Tools: []string{"cursor"}}); err != nil {
		t.Fatal(err)
	}
}
