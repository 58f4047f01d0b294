// Package loader fetches a fixed set of data sources concurrently and hands
// back all results at once, or the first failure.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"choromap/internal/geom"
	"choromap/internal/logger"
	"choromap/internal/metrics"
)

// Kind selects how a source is fetched and decoded.
type Kind string

const (
	KindJSON    Kind = "json"    // flat object of strings, e.g. name -> id
	KindCSV     Kind = "csv"     // ingest.Table
	KindGeoJSON Kind = "geojson" // *geojson.FeatureCollection
	KindWKTCSV  Kind = "wkt-csv" // CSV rows with a WKT column, as *geojson.FeatureCollection

	// KindTopoJSON expands one object of a topology, as *geojson.FeatureCollection.
	KindTopoJSON Kind = "topojson"
)

// Source names one fetch and the key its payload is stored under.
type Source struct {
	Key  string          `yaml:"key"`
	Kind Kind            `yaml:"kind"`
	Path string          `yaml:"path"`
	WKT  geom.WKTColumns `yaml:"wkt,omitempty"`

	// Object names the topology object for KindTopoJSON; empty takes all.
	Object string `yaml:"object,omitempty"`
}

// FetchFunc retrieves and decodes one source.
type FetchFunc func(ctx context.Context, src Source) (any, error)

// LoadError is returned when any source fails; the whole load is void.
type LoadError struct {
	Key  string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Key, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type Loader struct {
	client *http.Client
	fetch  map[Kind]FetchFunc
	log    *slog.Logger
}

// New returns a loader with the built-in kinds registered. A nil client gets
// a 30 second timeout.
func New(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	l := &Loader{client: client, fetch: make(map[Kind]FetchFunc), log: logger.L()}
	l.fetch[KindJSON] = l.fetchLookup
	l.fetch[KindCSV] = l.fetchTable
	l.fetch[KindGeoJSON] = l.fetchFeatures
	l.fetch[KindWKTCSV] = l.fetchWKT
	l.fetch[KindTopoJSON] = l.fetchTopology
	return l
}

// Handle registers or replaces the fetch function for k.
func (l *Loader) Handle(k Kind, f FetchFunc) {
	l.fetch[k] = f
}

func (l *Loader) validate(sources []Source) error {
	if len(sources) == 0 {
		return errors.New("loader: no sources")
	}
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if s.Key == "" {
			return fmt.Errorf("loader: source %q has no key", s.Path)
		}
		if seen[s.Key] {
			return fmt.Errorf("loader: duplicate key %q", s.Key)
		}
		seen[s.Key] = true
		if _, ok := l.fetch[s.Kind]; !ok {
			return fmt.Errorf("loader: source %q: unknown kind %q", s.Key, s.Kind)
		}
	}
	return nil
}

// Load fetches every source in parallel. It returns once all succeed, or with
// the first *LoadError; the remaining fetches see a cancelled context.
func (l *Loader) Load(ctx context.Context, sources []Source) (Results, error) {
	if err := l.validate(sources); err != nil {
		return nil, err
	}
	start := time.Now()
	out := make([]any, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		fetch := l.fetch[src.Kind]
		g.Go(func() error {
			v, err := fetch(gctx, src)
			if err != nil {
				metrics.LoadsTotal.WithLabelValues(string(src.Kind), "error").Inc()
				l.log.Error("source_load_error", "key", src.Key, "path", src.Path, "err", err)
				return &LoadError{Key: src.Key, Path: src.Path, Err: err}
			}
			metrics.LoadsTotal.WithLabelValues(string(src.Kind), "ok").Inc()
			l.log.Debug("source_loaded", "key", src.Key, "kind", src.Kind)
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res := make(Results, len(sources))
	for i, src := range sources {
		res[src.Key] = out[i]
	}
	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.LoadDurationMs.Observe(ms)
	l.log.Info("load_done", "sources", len(sources), "ms", ms)
	return res, nil
}

// LoadThen calls onComplete exactly once with all results, or never when the
// load fails.
func (l *Loader) LoadThen(ctx context.Context, sources []Source, onComplete func(Results)) error {
	res, err := l.Load(ctx, sources)
	if err != nil {
		return err
	}
	onComplete(res)
	return nil
}
