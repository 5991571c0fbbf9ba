package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/repoconf-labs/repoconf/internal/storage"
)

// Entry records one applied projection.
type Entry struct {
	Tool string `toml:"tool"`
	// File is the target path relative to the project root, in slash
	// form.
	File string `toml:"file"`
	// Block is the managed block id, or empty for whole-file
	// projections.
	Block string `toml:"block,omitempty"`
	// Checksum is "sha256:<hex>" of the content as it was written,
	// after any merge into existing file content.
	Checksum string `toml:"checksum"`
	// Format is the document format the projection was written with, so
	// later removals use the same block conventions.
	Format    string    `toml:"format,omitempty"`
	AppliedAt time.Time `toml:"applied_at"`
}

// EntryKey builds the map key for a tool/file/block triple.
func EntryKey(tool, file, block string) string {
	return tool + "\x00" + file + "\x00" + block
}

// SplitKey is the inverse of EntryKey.
func SplitKey(key string) (tool, file, block string) {
	parts := strings.SplitN(key, "\x00", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// Ledger is the in-memory form of the ledger file.
type Ledger struct {
	Version string           `toml:"version"`
	Entries map[string]Entry `toml:"-"`

	path string
}

// ledgerFile is the serialized shape: entries as a list, so the TOML stays
// diffable and the key encoding never reaches disk.
type ledgerFile struct {
	Version string  `toml:"version"`
	Entries []Entry `toml:"entries,omitempty"`
}

// Path returns the file the ledger persists to.
func (l *Ledger) Path() string { return l.path }

// Load reads the ledger at path. A missing file yields an empty ledger;
// unknown TOML fields are ignored so newer ledgers stay readable.
func Load(path string) (*Ledger, error) {
	l := &Ledger{Version: Version, Entries: map[string]Entry{}, path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("ledger: read %s: %w", path, err)
	}
	var f ledgerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ledger: parse %s: %w", path, err)
	}
	if err := CheckVersion(f.Version); err != nil {
		return nil, err
	}
	if f.Version != "" {
		l.Version = f.Version
	}
	for _, e := range f.Entries {
		l.Entries[EntryKey(e.Tool, e.File, e.Block)] = e
	}
	return l, nil
}

// Save writes the ledger atomically, creating the parent directory.
// Entries are sorted so saves are deterministic.
func (l *Ledger) Save() error {
	f := ledgerFile{Version: Version}
	for _, e := range l.Entries {
		f.Entries = append(f.Entries, e)
	}
	sort.Slice(f.Entries, func(i, j int) bool {
		a, b := f.Entries[i], f.Entries[j]
		if a.Tool != b.Tool {
			return a.Tool < b.Tool
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Block < b.Block
	})
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ledger: create dir: %w", err)
	}
	// Callers serialize through WithLock, which already holds the
	// ledger file's lock; taking it again here would deadlock.
	opts := storage.DefaultOptions()
	opts.NoLock = true
	return storage.WriteAtomic(l.path, data, opts)
}

// Get returns the entry for a tool/file/block triple.
func (l *Ledger) Get(tool, file, block string) (Entry, bool) {
	e, ok := l.Entries[EntryKey(tool, file, block)]
	return e, ok
}

// Upsert records an applied projection.
func (l *Ledger) Upsert(e Entry) {
	if e.AppliedAt.IsZero() {
		e.AppliedAt = time.Now().UTC().Truncate(time.Second)
	}
	l.Entries[EntryKey(e.Tool, e.File, e.Block)] = e
}

// Remove drops an entry. Removing an absent entry is a no-op.
func (l *Ledger) Remove(tool, file, block string) {
	delete(l.Entries, EntryKey(tool, file, block))
}

// ForTool returns the entries recorded for one tool, sorted by file then
// block.
func (l *Ledger) ForTool(tool string) []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.Tool == tool {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Block < out[j].Block
	})
	return out
}

// WithLock runs fn holding the ledger file's exclusive lock for the whole
// load-modify-save sequence. fn receives a freshly loaded ledger; returning
// nil saves it, returning an error discards the changes.
func WithLock(path string, timeout time.Duration, fn func(*Ledger) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ledger: create dir: %w", err)
	}
	release, err := storage.Lock(path, timeout)
	if err != nil {
		return err
	}
	defer release()

	l, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return l.Save()
}
