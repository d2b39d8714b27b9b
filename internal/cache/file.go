package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/freqlab/l21/pkg/labeling"
)

// Dir keeps one JSON record per labeling, at
// <root>/<backend>/<digest[:2]>/<digest>.json.
type Dir struct {
	root string
	// ttl bounds the age of a record; zero keeps records forever
	ttl time.Duration
	now func() time.Time
}

// OpenDir creates root if needed.
func OpenDir(root string, ttl time.Duration) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &Dir{root: root, ttl: ttl, now: time.Now}, nil
}

// record is the stored form. It repeats the key's order and settings so
// a record written for another key never passes as a hit.
type record struct {
	Order    int               `json:"order"`
	Settings Settings          `json:"settings"`
	SolvedAt time.Time         `json:"solved_at"`
	Labeling labeling.Labeling `json:"labeling"`
}

// Get returns the labeling for key. Unreadable, expired and mismatched
// records are removed and reported as misses.
func (d *Dir) Get(ctx context.Context, key Key) (*labeling.Labeling, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := d.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached labeling: %w", err)
	}

	var r record
	if err := json.Unmarshal(raw, &r); err != nil || !d.valid(r, key) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return &r.Labeling, true, nil
}

func (d *Dir) valid(r record, key Key) bool {
	if r.Order != key.Order || r.Settings != key.Settings || len(r.Labeling.Labels) != key.Order {
		return false
	}
	if len(r.Labeling.Labels) > 0 && r.Labeling.Span != slices.Max(r.Labeling.Labels) {
		return false
	}
	return d.ttl <= 0 || !d.now().After(r.SolvedAt.Add(d.ttl))
}

// Put writes the record to a temporary file and renames it into place,
// so concurrent readers see either the old record or the new one.
func (d *Dir) Put(ctx context.Context, key Key, l *labeling.Labeling) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(record{Order: key.Order, Settings: key.Settings, SolvedAt: d.now(), Labeling: *l})
	if err != nil {
		return err
	}

	path := d.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (d *Dir) Close() error {
	return nil
}

func (d *Dir) path(key Key) string {
	backend := key.Settings.Backend
	if backend == "" {
		backend = "default"
	}
	return filepath.Join(d.root, backend, key.Digest[:2], key.Digest+".json")
}

var _ Store = (*Dir)(nil)
