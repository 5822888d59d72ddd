// Package palette keeps a collection of named palettes, derives variations for
// every base color and maintains each palette's deduplicated flat color list.
package palette

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/datastore"
	"github.com/color-game/palette/models"
)

const (
	DefaultPaletteName = "My Awesome Palette"
	DefaultKey         = "color-palette-collection"
)

// Store owns one PaletteCollection and writes it back to its blob store after
// every mutation. Writes are best-effort: a failed write is logged and the
// in-memory change stands.
type Store struct {
	mu         sync.Mutex
	blobs      datastore.BlobStore
	key        string
	logger     *log.Logger
	metrics    *Metrics
	now        func() time.Time
	threshold  float64
	collection models.PaletteCollection
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithThreshold sets the initial similarity threshold. Default is colors.DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(s *Store) {
		s.threshold = threshold
	}
}

// WithKey sets the blob key the collection is stored under. Default is DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// WithClock replaces time.Now for export timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New loads the collection from blobs, or starts a fresh one with a default
// palette when nothing usable is stored. Only a failing backend read is an error.
func New(ctx context.Context, blobs datastore.BlobStore, opts ...Option) (*Store, error) {
	if blobs == nil {
		return nil, ErrNoBlobStore
	}

	s := &Store{
		blobs:     blobs,
		key:       DefaultKey,
		logger:    log.Default(),
		now:       time.Now,
		threshold: colors.DefaultThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.threshold = colors.ClampThreshold(s.threshold)

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	dirty := false

	data, err := s.blobs.Get(ctx, s.key)
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		s.collection = models.NewPaletteCollection()
	case err != nil:
		return fmt.Errorf("failed to load palette collection: %w", err)
	default:
		collection, decodeErr := models.DeserializePaletteCollection(data)
		if decodeErr != nil {
			s.logger.Printf("Stored palette collection is unreadable, starting fresh: %v", decodeErr)
			collection = models.NewPaletteCollection()
			dirty = true
		}
		s.collection = collection
	}

	for name, palette := range s.collection.Palettes {
		repaired, changed := s.repair(name, palette)
		s.collection.Palettes[name] = repaired
		dirty = dirty || changed
	}

	if len(s.collection.Palettes) == 0 {
		name := s.uniqueDefaultName()
		s.insertPalette(name)
		s.logger.Printf("Created default palette %q", name)
		dirty = true
	} else if _, ok := s.collection.Palettes[s.activeName()]; !ok {
		s.setActive(s.sortedNames()[0])
		dirty = true
	}

	if dirty {
		s.persist(ctx)
	}
	s.metrics.setFlatColors(len(s.active().FlatColors))

	return nil
}

// repair brings a stored palette up to the current schema: canonical hexes,
// one complete variation set per base color and a flat list.
func (s *Store) repair(name string, palette models.Palette) (models.Palette, bool) {
	changed := false
	if palette.Name != name {
		palette.Name = name
		changed = true
	}

	baseColors := make([]models.Color, 0, len(palette.BaseColors))
	ids := make(map[string]bool, len(palette.BaseColors))
	for _, color := range palette.BaseColors {
		hex, err := colors.Canonical(color.Hex)
		if err != nil {
			s.logger.Printf("Dropping color %q from palette %q: %v", color.ID, name, err)
			changed = true
			continue
		}
		if color.ID == "" {
			color.ID = color.GenerateKey()
			changed = true
		}
		if ids[color.ID] {
			s.logger.Printf("Dropping duplicate color id %q from palette %q", color.ID, name)
			changed = true
			continue
		}
		if hex != color.Hex {
			color.Hex = hex
			changed = true
		}
		ids[color.ID] = true
		baseColors = append(baseColors, color)
	}
	palette.BaseColors = baseColors

	if palette.Variations == nil {
		palette.Variations = map[string]models.VariationSet{}
	}
	for id := range palette.Variations {
		if !ids[id] {
			delete(palette.Variations, id)
			changed = true
		}
	}

	regenerated := false
	for _, color := range palette.BaseColors {
		if vs, ok := palette.Variations[color.ID]; !ok || !wellFormed(vs) {
			palette.Variations[color.ID] = NewVariationSet(color.Hex)
			regenerated = true
		}
	}
	if regenerated {
		s.logger.Printf("Regenerated variations for palette %q", name)
	}

	if regenerated || palette.FlatColors == nil {
		palette.FlatColors = FlatColors(palette, s.threshold)
		changed = true
	}

	return palette, changed
}

// persist writes the whole collection. Failures are logged, never returned.
func (s *Store) persist(ctx context.Context) {
	data, err := s.collection.Serialize()
	if err == nil {
		err = s.blobs.Put(ctx, s.key, data)
	}
	if err != nil {
		s.logger.Printf("Error saving palette collection: %v", err)
		s.metrics.persistFailed()
	}
}

func (s *Store) activeName() string {
	if s.collection.ActivePaletteName == nil {
		return ""
	}
	return *s.collection.ActivePaletteName
}

func (s *Store) setActive(name string) {
	s.collection.ActivePaletteName = &name
}

func (s *Store) active() models.Palette {
	return s.collection.Palettes[s.activeName()]
}

func (s *Store) insertPalette(name string) {
	s.collection.Palettes[name] = models.NewPalette(name)
	s.setActive(name)
}

// savePalette recomputes the flat list, stores the palette and persists
func (s *Store) savePalette(ctx context.Context, palette models.Palette) {
	palette.FlatColors = FlatColors(palette, s.threshold)
	s.collection.Palettes[palette.Name] = palette
	if palette.Name == s.activeName() {
		s.metrics.setFlatColors(len(palette.FlatColors))
	}
	s.persist(ctx)
}

func (s *Store) sortedNames() []string {
	names := make([]string, 0, len(s.collection.Palettes))
	for name := range s.collection.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) uniqueName(base string, variant func(i int) string) string {
	if _, taken := s.collection.Palettes[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		candidate := variant(i)
		if _, taken := s.collection.Palettes[candidate]; !taken {
			return candidate
		}
	}
}

func (s *Store) uniqueDefaultName() string {
	return s.uniqueName(DefaultPaletteName, func(i int) string {
		return fmt.Sprintf("%s %d", DefaultPaletteName, i)
	})
}

// CreatePalette adds an empty palette and makes it active. It fails when the
// name is blank or already used.
func (s *Store) CreatePalette(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	_, taken := s.collection.Palettes[name]
	if name == "" || taken {
		s.metrics.observe("create_palette", false)
		return false
	}

	s.insertPalette(name)
	s.metrics.setFlatColors(0)
	s.persist(ctx)
	s.metrics.observe("create_palette", true)
	return true
}

// LoadPalette makes an existing palette active
func (s *Store) LoadPalette(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	palette, ok := s.collection.Palettes[name]
	if !ok {
		s.metrics.observe("load_palette", false)
		return false
	}

	s.setActive(name)
	s.metrics.setFlatColors(len(palette.FlatColors))
	s.persist(ctx)
	s.metrics.observe("load_palette", true)
	return true
}

func (s *Store) SwitchPalette(ctx context.Context, name string) bool {
	return s.LoadPalette(ctx, name)
}

// RenamePalette moves a palette to a new name, following it with the active pointer
func (s *Store) RenamePalette(ctx context.Context, oldName, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newName = strings.TrimSpace(newName)
	palette, ok := s.collection.Palettes[oldName]
	_, taken := s.collection.Palettes[newName]
	if !ok || taken || newName == "" {
		s.metrics.observe("rename_palette", false)
		return false
	}

	delete(s.collection.Palettes, oldName)
	palette.Name = newName
	s.collection.Palettes[newName] = palette
	if s.activeName() == oldName {
		s.setActive(newName)
	}

	s.persist(ctx)
	s.metrics.observe("rename_palette", true)
	return true
}

// DeletePalette removes a palette. Deleting the active palette creates a fresh
// default palette and activates it, so the collection is never empty.
func (s *Store) DeletePalette(ctx context.Context, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collection.Palettes[name]; !ok {
		s.metrics.observe("delete_palette", false)
		return false
	}

	wasActive := s.activeName() == name
	delete(s.collection.Palettes, name)
	if wasActive {
		s.insertPalette(s.uniqueDefaultName())
		s.metrics.setFlatColors(0)
	}

	s.persist(ctx)
	s.metrics.observe("delete_palette", true)
	return true
}

// ActivePaletteName returns the name CRUD operations currently target
func (s *Store) ActivePaletteName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeName()
}

// ActivePalette returns a copy of the active palette
func (s *Store) ActivePalette() models.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active().Clone()
}

// Palette returns a copy of the named palette
func (s *Store) Palette(name string) (models.Palette, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	palette, ok := s.collection.Palettes[name]
	if !ok {
		return models.Palette{}, false
	}
	return palette.Clone(), true
}

// PaletteNames lists every palette name in sorted order
func (s *Store) PaletteNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedNames()
}
