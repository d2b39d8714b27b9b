// Package cache stores solved labelings so repeated runs on the same
// graph and settings skip the solver.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
)

// Store keeps labelings by Key.
type Store interface {
	// Get returns the labeling stored under key and whether there was one.
	Get(ctx context.Context, key Key) (*labeling.Labeling, bool, error)
	Put(ctx context.Context, key Key, l *labeling.Labeling) error
	Close() error
}

// Settings are the solver settings that change what a labeling looks
// like, and so belong in its key.
type Settings struct {
	Backend          string `json:"backend"`
	Bound            string `json:"bound"`
	DedupDistanceTwo bool   `json:"dedup_distance_two"`
	UsageOrdering    bool   `json:"usage_ordering"`
}

// Key identifies the labeling of one graph under one set of settings.
type Key struct {
	// Digest is the hex SHA-256 of the graph and the settings.
	Digest   string
	Order    int
	Settings Settings
}

// NewKey keys g under s. Graphs that differ only in edge order or
// parallel edges share a key; isolated vertices do not.
func NewKey(g *graph.Graph, s Settings) Key {
	data, _ := json.Marshal(struct {
		Order    int          `json:"order"`
		Edges    []graph.Edge `json:"edges"`
		Settings Settings     `json:"settings"`
	}{g.Order(), g.Edges(), s})
	sum := sha256.Sum256(data)
	return Key{Digest: hex.EncodeToString(sum[:]), Order: g.Order(), Settings: s}
}

// Nop never stores anything. It backs --no-cache.
type Nop struct{}

func (Nop) Get(context.Context, Key) (*labeling.Labeling, bool, error) {
	return nil, false, nil
}

func (Nop) Put(context.Context, Key, *labeling.Labeling) error {
	return nil
}

func (Nop) Close() error {
	return nil
}

var _ Store = Nop{}
