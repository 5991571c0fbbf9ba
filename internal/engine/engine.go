package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/repoconf-labs/repoconf/internal/blocks"
	"github.com/repoconf-labs/repoconf/internal/document"
	"github.com/repoconf-labs/repoconf/internal/ledger"
	"github.com/repoconf-labs/repoconf/internal/rules"
	"github.com/repoconf-labs/repoconf/internal/storage"
	"github.com/repoconf-labs/repoconf/internal/tools"
)

// Options configures an engine.
type Options struct {
	// Storage controls atomic write behavior.
	Storage storage.Options
	// LedgerPath overrides the ledger location. Defaults to
	// .repoconf/ledger.toml under the root.
	LedgerPath string
	Logger     *slog.Logger
}

// SyncOptions narrows one engine operation.
type SyncOptions struct {
	// DryRun computes and reports actions without writing anything.
	DryRun bool
	// Tools restricts the operation to the named tools. Empty means
	// every enabled tool.
	Tools []string
}

// Engine drives projections for one project root.
type Engine struct {
	root       string
	reg        *rules.Registry
	enabled    []string
	ledgerPath string
	sopts      storage.Options
	log        *slog.Logger
}

// New builds an engine over root projecting the given registry into the
// enabled tools.
func New(root string, reg *rules.Registry, enabled []string, opts Options) *Engine {
	ledgerPath := opts.LedgerPath
	if ledgerPath == "" {
		ledgerPath = filepath.Join(root, ".repoconf", "ledger.toml")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	sopts := opts.Storage
	if sopts.LockTimeout == 0 {
		sopts = storage.DefaultOptions()
	}
	return &Engine{
		root:       root,
		reg:        reg,
		enabled:    enabled,
		ledgerPath: ledgerPath,
		sopts:      sopts,
		log:        log.With(slog.String("component", "engine")),
	}
}

// resolveTools intersects the enabled tools with an optional filter.
// Filter names that are not enabled for this project are an error rather
// than a silent no-op.
func (e *Engine) resolveTools(filter []string) ([]string, error) {
	if len(filter) == 0 {
		return e.enabled, nil
	}
	enabled := map[string]bool{}
	for _, name := range e.enabled {
		enabled[name] = true
	}
	var out []string
	for _, name := range filter {
		if _, err := tools.Get(name); err != nil {
			return nil, err
		}
		if !enabled[name] {
			return nil, fmt.Errorf("engine: tool %q is not enabled for this project", name)
		}
		out = append(out, name)
	}
	return out, nil
}

// Check classifies every projection without modifying anything.
func (e *Engine) Check(opts SyncOptions) (Report, error) {
	names, err := e.resolveTools(opts.Tools)
	if err != nil {
		return Report{}, err
	}
	led, err := ledger.Load(e.ledgerPath)
	if err != nil {
		return Report{}, err
	}

	var report Report
	ctx := tools.Context{Root: e.root, Rules: e.reg.List()}
	for _, name := range names {
		report.Merge(e.checkTool(ctx, name, led))
	}
	return report, nil
}

func (e *Engine) checkTool(ctx tools.Context, name string, led *ledger.Ledger) Report {
	var report Report
	integ, err := tools.Get(name)
	if err != nil {
		report.Items = append(report.Items, ItemReport{Tool: name, Outcome: OutcomeFailed, Err: err})
		return report
	}
	targets, err := integ.Targets(ctx)
	if err != nil {
		if errors.Is(err, tools.ErrDependencyAbsent) {
			report.Items = append(report.Items, ItemReport{
				Tool: name, Outcome: OutcomeSkipped, Action: "dependency absent",
			})
			return report
		}
		report.Items = append(report.Items, ItemReport{Tool: name, Outcome: OutcomeFailed, Err: err})
		return report
	}
	for _, tg := range targets {
		p := Projection{Tool: name, Target: tg}
		desired, err := integ.Render(ctx, tg)
		if err != nil {
			report.Items = append(report.Items, failedItem(p, err))
			continue
		}
		report.Items = append(report.Items, e.classify(p, desired, led))
	}
	return report
}

// classify determines the on-disk state of one projection.
func (e *Engine) classify(p Projection, desired string, led *ledger.Ledger) ItemReport {
	item := ItemReport{Tool: p.Tool, Path: p.Target.Path, Block: p.Target.BlockID}

	full, err := storage.ReadText(filepath.Join(e.root, filepath.FromSlash(p.Target.Path)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			item.State = StateMissing
			return item
		}
		item.Err = err
		item.Outcome = OutcomeFailed
		return item
	}

	var current string
	var present bool
	if p.Target.Kind == tools.KindFileManaged {
		current, present = full, true
	} else {
		doc, derr := document.New(full, p.Target.Format)
		if derr != nil {
			item.Err = derr
			item.Outcome = OutcomeFailed
			return item
		}
		current, present, derr = doc.Block(p.Target.BlockID)
		if derr != nil {
			item.Err = derr
			item.Outcome = OutcomeFailed
			return item
		}
	}

	_, recorded := led.Get(p.Key())
	switch {
	case !present:
		item.State = StateMissing
	case current == desired:
		item.State = StateHealthy
	case recorded:
		item.State = StateDrifted
	default:
		item.State = StateUnmanaged
	}
	return item
}

// Sync converges every projection and removes stale ledger entries for the
// selected tools.
func (e *Engine) Sync(opts SyncOptions) (Report, error) {
	return e.converge(opts, true)
}

// Fix repairs the projections Check would flag. It never touches stale
// entries, and its report counts only what this pass actually did.
func (e *Engine) Fix(opts SyncOptions) (Report, error) {
	return e.converge(opts, false)
}

func (e *Engine) converge(opts SyncOptions, cleanupStale bool) (Report, error) {
	names, err := e.resolveTools(opts.Tools)
	if err != nil {
		return Report{}, err
	}

	report := Report{DryRun: opts.DryRun}
	run := func(led *ledger.Ledger) error {
		ctx := tools.Context{Root: e.root, Rules: e.reg.List()}
		for _, name := range names {
			report.Merge(e.convergeTool(ctx, name, led, opts.DryRun, cleanupStale))
		}
		return nil
	}

	if opts.DryRun {
		led, err := ledger.Load(e.ledgerPath)
		if err != nil {
			return Report{}, err
		}
		if err := run(led); err != nil {
			return Report{}, err
		}
		return report, nil
	}

	if err := ledger.WithLock(e.ledgerPath, e.sopts.LockTimeout, run); err != nil {
		return Report{}, err
	}
	return report, nil
}

func (e *Engine) convergeTool(ctx tools.Context, name string, led *ledger.Ledger, dryRun, cleanupStale bool) Report {
	var report Report
	integ, err := tools.Get(name)
	if err != nil {
		report.Items = append(report.Items, ItemReport{Tool: name, Outcome: OutcomeFailed, Err: err})
		return report
	}
	targets, err := integ.Targets(ctx)
	if err != nil {
		if errors.Is(err, tools.ErrDependencyAbsent) {
			e.log.Debug("skipping tool", slog.String("tool", name), slog.String("reason", "dependency absent"))
			report.Items = append(report.Items, ItemReport{
				Tool: name, Outcome: OutcomeSkipped, Action: "dependency absent",
			})
			return report
		}
		report.Items = append(report.Items, ItemReport{Tool: name, Outcome: OutcomeFailed, Err: err})
		return report
	}

	live := map[string]bool{}
	for _, tg := range targets {
		p := Projection{Tool: name, Target: tg}
		live[ledger.EntryKey(p.Key())] = true

		desired, err := integ.Render(ctx, tg)
		if err != nil {
			report.Items = append(report.Items, failedItem(p, err))
			continue
		}
		report.Items = append(report.Items, e.applyOne(p, desired, led, dryRun))
	}

	if cleanupStale {
		for _, entry := range led.ForTool(name) {
			if live[ledger.EntryKey(entry.Tool, entry.File, entry.Block)] {
				continue
			}
			report.Items = append(report.Items, e.removeStale(entry, led, dryRun))
		}
	}
	return report
}

// applyOne converges a single projection, recording the checksum of the
// content as actually written.
func (e *Engine) applyOne(p Projection, desired string, led *ledger.Ledger, dryRun bool) ItemReport {
	item := e.classify(p, desired, led)
	if item.Outcome == OutcomeFailed {
		return item
	}
	if item.State == StateHealthy {
		item.Outcome = OutcomeHealthy
		// Adopt content that matches but predates the ledger.
		if _, recorded := led.Get(p.Key()); !recorded && !dryRun {
			led.Upsert(ledger.Entry{
				Tool: p.Tool, File: p.Target.Path, Block: p.Target.BlockID,
				Checksum: storage.ChecksumString(desired),
				Format:   string(p.Target.Format),
			})
		}
		return item
	}

	verb := "update"
	if item.State == StateMissing {
		verb = "create"
	}
	if dryRun {
		item.Action = fmt.Sprintf("would %s %s", verb, p.describe())
		return item
	}

	abs := filepath.Join(e.root, filepath.FromSlash(p.Target.Path))
	full, err := storage.ReadText(abs)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return failedItem(p, err)
	}

	var written, applied string
	if p.Target.Kind == tools.KindFileManaged {
		written, applied = desired, desired
	} else {
		doc, derr := document.New(full, p.Target.Format)
		if derr != nil {
			return failedItem(p, derr)
		}
		if derr := doc.UpsertBlock(p.Target.BlockID, desired); derr != nil {
			return failedItem(p, derr)
		}
		written = doc.Text()
		applied, _, derr = doc.Block(p.Target.BlockID)
		if derr != nil {
			return failedItem(p, derr)
		}
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return failedItem(p, err)
	}
	if err := storage.WriteAtomic(abs, []byte(written), e.sopts); err != nil {
		return failedItem(p, err)
	}

	led.Upsert(ledger.Entry{
		Tool: p.Tool, File: p.Target.Path, Block: p.Target.BlockID,
		Checksum: storage.ChecksumString(applied),
		Format:   string(p.Target.Format),
	})
	e.log.Info("projection applied",
		slog.String("tool", p.Tool),
		slog.String("path", p.Target.Path),
		slog.String("block", p.Target.BlockID),
		slog.String("state", string(item.State)))
	item.Outcome = OutcomeFixed
	item.Action = verb + "d " + p.describe()
	return item
}

// removeStale unwinds one ledger entry whose projection no longer exists,
// deleting the managed block or file it covered.
func (e *Engine) removeStale(entry ledger.Entry, led *ledger.Ledger, dryRun bool) ItemReport {
	item := ItemReport{Tool: entry.Tool, Path: entry.File, Block: entry.Block}
	if dryRun {
		item.Action = "would remove stale " + entry.File
		return item
	}

	abs := filepath.Join(e.root, filepath.FromSlash(entry.File))
	full, err := storage.ReadText(abs)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// File already gone; just drop the entry.
	case err != nil:
		item.Outcome = OutcomeFailed
		item.Err = err
		return item
	case entry.Block == "":
		if rmErr := os.Remove(abs); rmErr != nil {
			item.Outcome = OutcomeFailed
			item.Err = rmErr
			return item
		}
	default:
		format := document.Format(entry.Format)
		if format == "" {
			format = document.FormatFromExtension(entry.File)
		}
		doc, derr := document.New(full, format)
		if derr != nil {
			item.Outcome = OutcomeFailed
			item.Err = derr
			return item
		}
		if derr := doc.RemoveBlock(entry.Block); derr != nil {
			// The user already removed the block by hand; the entry is
			// still stale either way.
			if !errors.Is(derr, blocks.ErrBlockNotFound) {
				item.Outcome = OutcomeFailed
				item.Err = derr
				return item
			}
		} else if derr := storage.WriteAtomic(abs, []byte(doc.Text()), e.sopts); derr != nil {
			item.Outcome = OutcomeFailed
			item.Err = derr
			return item
		}
	}

	led.Remove(entry.Tool, entry.File, entry.Block)
	item.Outcome = OutcomeFixed
	item.Action = "removed stale " + entry.File
	return item
}

func failedItem(p Projection, err error) ItemReport {
	return ItemReport{
		Tool:    p.Tool,
		Path:    p.Target.Path,
		Block:   p.Target.BlockID,
		Outcome: OutcomeFailed,
		Err:     err,
	}
}

func (p Projection) describe() string {
	if p.Target.BlockID == "" {
		return p.Target.Path
	}
	return p.Target.Path + "#" + p.Target.BlockID
}
