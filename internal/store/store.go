package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
)

var (
	ErrNotFound    = errors.New("moose not found")
	ErrExists      = errors.New("moose already exists")
	ErrInvalidName = errors.New("invalid moose name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

const recordExt = ".json"

// Moose is a stored, decoded moose.
type Moose struct {
	Name    string      `json:"name"`
	Grid    *moose.Grid `json:"moose"`
	Created time.Time   `json:"created"`
}

// record is the on-disk form. Image is the palette-index artifact and
// Created is in Unix milliseconds.
type record struct {
	Name    string         `json:"name"`
	Image   moose.Artifact `json:"image"`
	Created int64          `json:"created"`
}

// Options configures a Store.
type Options struct {
	Dir           string
	CacheTTL      time.Duration
	MinNameLength int
	MaxNameLength int
}

// Store keeps one JSON record per moose in a directory.
//
// Writes are serialised per name, which keeps "create unless it exists"
// atomic within the process. Decoded grids are cached; callers always get
// their own copy.
type Store struct {
	def  *moose.Def
	dir  string
	opts Options

	grids *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time
}

// Open creates the store directory if needed and returns a Store.
func Open(def *moose.Def, opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("store directory is not set")
	}
	if opts.MinNameLength < 1 {
		opts.MinNameLength = 1
	}
	if opts.MaxNameLength < opts.MinNameLength {
		opts.MaxNameLength = 48
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &Store{
		def:   def,
		dir:   opts.Dir,
		opts:  opts,
		grids: cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		locks: make(map[string]*sync.Mutex),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}, nil
}

// Def returns the moose definition records are encoded with.
func (s *Store) Def() *moose.Def {
	return s.def
}

// ValidateName checks a moose name: letters, digits, space, '_' and '-',
// within the configured length bounds.
func (s *Store) ValidateName(name string) error {
	if len(name) < s.opts.MinNameLength || len(name) > s.opts.MaxNameLength {
		return fmt.Errorf("%w: %q must be %d to %d characters", ErrInvalidName, name, s.opts.MinNameLength, s.opts.MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q has characters other than letters, digits, space, '_' and '-'", ErrInvalidName, name)
	}
	return nil
}

// Create stores g under name. It fails with ErrExists if the name is taken.
func (s *Store) Create(ctx context.Context, name string, g *moose.Grid) (*Moose, error) {
	return s.create(ctx, name, g, s.now())
}

func (s *Store) create(ctx context.Context, name string, g *moose.Grid, created time.Time) (*Moose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ValidateName(name); err != nil {
		return nil, err
	}
	image, err := s.def.Encode(g)
	if err != nil {
		return nil, err
	}

	lock := s.lock(name)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check %s: %w", name, err)
	}

	rec := record{Name: name, Image: image, Created: created.UnixMilli()}
	if err := writeRecord(path, rec); err != nil {
		return nil, err
	}
	s.grids.Set(name, g.Clone(), cache.DefaultExpiration)
	logging.Info("Store", "Created moose %q", name)

	return &Moose{Name: name, Grid: g.Clone(), Created: time.UnixMilli(rec.Created)}, nil
}

// Get loads the moose called name.
func (s *Store) Get(ctx context.Context, name string) (*Moose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := readRecord(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return s.decode(rec)
}

// Random returns a uniformly chosen moose.
func (s *Store) Random(ctx context.Context) (*Moose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNotFound
	}

	s.rngMu.Lock()
	pick := files[s.rng.Intn(len(files))]
	s.rngMu.Unlock()

	rec, err := readRecord(filepath.Join(s.dir, pick))
	if err != nil {
		return nil, err
	}
	return s.decode(rec)
}

// Latest returns up to n moose, most recently created first.
func (s *Store) Latest(ctx context.Context, n int) ([]*Moose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	recs := make([]record, 0, len(files))
	for _, f := range files {
		rec, err := readRecord(filepath.Join(s.dir, f))
		if err != nil {
			logging.Warn("Store", "Skipping unreadable record %s: %v", f, err)
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Created != recs[j].Created {
			return recs[i].Created > recs[j].Created
		}
		return recs[i].Name < recs[j].Name
	})
	if n >= 0 && len(recs) > n {
		recs = recs[:n]
	}

	out := make([]*Moose, 0, len(recs))
	for _, rec := range recs {
		m, err := s.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Count returns the number of stored moose.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	files, err := s.files()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

func (s *Store) decode(rec record) (*Moose, error) {
	if cached, found := s.grids.Get(rec.Name); found {
		return &Moose{Name: rec.Name, Grid: cached.(*moose.Grid).Clone(), Created: time.UnixMilli(rec.Created)}, nil
	}

	g, err := s.def.Decode(rec.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to decode moose %q: %w", rec.Name, err)
	}
	s.grids.Set(rec.Name, g, cache.DefaultExpiration)
	return &Moose{Name: rec.Name, Grid: g.Clone(), Created: time.UnixMilli(rec.Created)}, nil
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, url.PathEscape(name)+recordExt)
}

func (s *Store) files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func readRecord(path string) (record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// writeRecord writes via a temporary file so readers never see a partial
// record.
func writeRecord(path string, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".moose-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}
