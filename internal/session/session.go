// Package session wires one dataset's pipeline: load, ingest, bind, build,
// calibrate, then period-driven mesh rebuilds. A Session replaces every
// piece of process-wide state; switching datasets closes one and opens
// another.
package session

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"

	"choromap/internal/binder"
	"choromap/internal/config"
	"choromap/internal/fragment"
	"choromap/internal/geom"
	"choromap/internal/info"
	"choromap/internal/ingest"
	"choromap/internal/loader"
	"choromap/internal/logger"
	"choromap/internal/region"
	"choromap/internal/scale"
	"choromap/internal/scene"
)

type Session struct {
	ds      config.Dataset
	reg     *region.Registry
	enc     scale.Encoding
	mgr     *scene.Manager
	info    *info.Resolver
	report  binder.Report
	periods []region.Period
}

// Open loads every source of ds and builds the registry. Any failure is
// fatal to the session; nothing is added to sc until Select is called.
func Open(ctx context.Context, ds config.Dataset, sc scene.Scene, ld *loader.Loader) (*Session, error) {
	var s *Session
	var buildErr error
	err := ld.LoadThen(ctx, ds.Sources, func(res loader.Results) {
		s, buildErr = build(ds, sc, res)
	})
	if err != nil {
		return nil, err
	}
	if buildErr != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.Name, buildErr)
	}
	logger.L().Info("session_open", "dataset", ds.Name, "regions", s.reg.Len(),
		"renderable", len(s.reg.Renderable()), "periods", len(s.periods), "max", s.enc.Max)
	return s, nil
}

func build(ds config.Dataset, sc scene.Scene, res loader.Results) (*Session, error) {
	tbl, err := res.Table(ds.Table.Source)
	if err != nil {
		return nil, err
	}
	periods, err := ingest.ExtractPeriods(tbl, ds.Table.NonPeriod)
	if err != nil {
		return nil, err
	}
	spec := ingest.Spec{NameColumn: ds.Table.NameColumn}
	if lk := ds.Table.Lookup; lk != nil {
		m, err := res.Lookup(lk.Source)
		if err != nil {
			return nil, err
		}
		spec.IDs = ingest.LookupID{Column: lk.Column, Table: m}
	} else {
		spec.IDs = ingest.ColumnID{Column: ds.Table.IDColumn}
	}
	b := region.NewBuilder()
	max, err := ingest.Ingest(b, tbl, periods, spec)
	if err != nil {
		return nil, err
	}

	fc, err := res.Features(ds.Geometry.Source)
	if err != nil {
		return nil, err
	}
	var center *orb.Point
	if c := ds.Geometry.Center; c != nil {
		center = &orb.Point{c[0], c[1]}
	}
	proj, err := geom.FitMercator(fc, ds.Geometry.Extent, center)
	if err != nil {
		return nil, err
	}
	bd := binder.Binder{
		Converter:    proj,
		IDProperty:   ds.Geometry.IDProperty,
		NameProperty: ds.Geometry.NameProperty,
		Rules:        ds.Geometry.Rules,
	}
	rep, err := bd.Bind(b, fc)
	if err != nil {
		return nil, err
	}

	reg := b.Build(periods, max)
	enc := scale.NewEncoding(max, ds.Encoding.MaxExtrusion, ds.Encoding.Clamped())
	labels, err := info.NewResolver(reg, ds.Label)
	if err != nil {
		return nil, err
	}
	return &Session{
		ds:      ds,
		reg:     reg,
		enc:     enc,
		mgr:     scene.NewManager(sc, reg, enc, ds.Style, ds.Placement),
		info:    labels,
		report:  rep,
		periods: periods,
	}, nil
}

func (s *Session) Dataset() config.Dataset { return s.ds }
func (s *Session) Registry() *region.Registry { return s.reg }
func (s *Session) Encoding() scale.Encoding { return s.enc }
func (s *Session) BindReport() binder.Report { return s.report }
func (s *Session) Periods() []region.Period { return append([]region.Period(nil), s.periods...) }
func (s *Session) Current() region.Period { return s.mgr.Period() }
func (s *Session) Meshes() []*scene.Mesh { return s.mgr.Meshes() }
func (s *Session) State() scene.State { return s.mgr.State() }

// Select rebuilds the meshes for p.
func (s *Session) Select(p region.Period) error {
	return s.mgr.Rebuild(p)
}

// SelectFragment selects the period named by frag, falling back to the
// first period, and returns what was selected.
func (s *Session) SelectFragment(frag string) (region.Period, error) {
	p := fragment.Parse(frag, s.ds.Scope, s.periods)
	return p, s.Select(p)
}

// Step moves the selection by delta periods, wrapping around.
func (s *Session) Step(delta int) error {
	n := len(s.periods)
	if n == 0 {
		return nil
	}
	i := 0
	cur := s.Current()
	for j, p := range s.periods {
		if p == cur {
			i = j
			break
		}
	}
	i = ((i+delta)%n + n) % n
	return s.Select(s.periods[i])
}

// Fragment is the location fragment of the current selection.
func (s *Session) Fragment() string {
	return fragment.Format(s.ds.Scope, s.Current())
}

// Label resolves the hover label for hits in the current period.
func (s *Session) Label(hits []scene.Hit) string {
	return s.info.Label(hits, s.Current())
}

// Close removes every mesh from the scene.
func (s *Session) Close() {
	s.mgr.Clear()
	logger.L().Info("session_close", "dataset", s.ds.Name)
}
