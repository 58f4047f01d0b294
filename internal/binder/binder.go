// Package binder joins geometry features onto ingested region records.
package binder

import (
	"errors"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	"choromap/internal/geom"
	"choromap/internal/logger"
	"choromap/internal/metrics"
	"choromap/internal/region"
)

// Binder attaches contours and display names to records.
type Binder struct {
	Converter    geom.Converter
	IDProperty   string // empty reads Feature.ID
	NameProperty string
	Rules        geom.Rules
	Log          *slog.Logger
}

// Report summarises one Bind pass.
type Report struct {
	Bound    []region.ID
	Excluded []string
	Unmapped []string    // features with no tabular record
	Unjoined []region.ID // records still without a contour
}

// Bind converts every feature and sets it on the matching record. Features
// with no record, excluded ids and non-areal geometries are skipped; none of
// that is an error.
func (b Binder) Bind(rb *region.Builder, fc *geojson.FeatureCollection) (Report, error) {
	log := b.Log
	if log == nil {
		log = logger.L()
	}
	if b.Converter == nil {
		return Report{}, errors.New("binder: no converter")
	}
	var rep Report
	for _, f := range fc.Features {
		id := geom.FeatureID(f, b.IDProperty)
		if id == "" {
			metrics.BindSkipsTotal.WithLabelValues("no_id").Inc()
			log.Debug("bind_skip_no_id")
			continue
		}
		if b.Rules.Excluded(id) {
			rep.Excluded = append(rep.Excluded, id)
			metrics.BindSkipsTotal.WithLabelValues("excluded").Inc()
			continue
		}
		rec, err := rb.Get(region.ID(id))
		if err != nil {
			rep.Unmapped = append(rep.Unmapped, id)
			metrics.BindSkipsTotal.WithLabelValues("unmapped").Inc()
			log.Debug("bind_skip_unmapped", "id", id)
			continue
		}
		g := f.Geometry
		if n, ok := b.Rules.Normalization(id); ok {
			g = n.Apply(g)
		}
		contour, err := b.Converter.Convert(g)
		if err != nil {
			metrics.BindSkipsTotal.WithLabelValues("geometry").Inc()
			log.Warn("bind_skip_geometry", "id", id, "err", err)
			continue
		}
		rec.Contour = contour
		if name := geom.FeatureName(f, b.NameProperty); name != "" {
			rec.Name = name
		}
		rep.Bound = append(rep.Bound, region.ID(id))
	}
	for _, e := range rb.Entries() {
		if !e.Record.Renderable() && !b.Rules.Excluded(string(e.ID)) {
			rep.Unjoined = append(rep.Unjoined, e.ID)
		}
	}
	if len(rep.Unjoined) > 0 {
		log.Warn("bind_records_without_geometry", "ids", rep.Unjoined)
	}
	log.Info("bind_done", "bound", len(rep.Bound), "excluded", len(rep.Excluded), "unmapped", len(rep.Unmapped))
	return rep, nil
}
