// Package info turns picker hits into the hover label.
package info

import (
	"bytes"
	"fmt"
	"math"
	"text/template"

	"github.com/dustin/go-humanize"

	"choromap/internal/logger"
	"choromap/internal/region"
	"choromap/internal/scene"
)

// DefaultTemplate renders "Alba: 375,000".
const DefaultTemplate = "{{.Name}}: {{.Value}}"

// Fields are the values a label template can reference.
type Fields struct {
	ID    region.ID
	Name  string
	Value string
}

type Resolver struct {
	reg  *region.Registry
	tmpl *template.Template
}

// NewResolver parses the label template. An empty text uses DefaultTemplate.
func NewResolver(reg *region.Registry, text string) (*Resolver, error) {
	if text == "" {
		text = DefaultTemplate
	}
	t, err := template.New("label").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("label template: %w", err)
	}
	return &Resolver{reg: reg, tmpl: t}, nil
}

// Label formats the first tagged hit for period p. Every failure yields "".
func (r *Resolver) Label(hits []scene.Hit, p region.Period) string {
	var id region.ID
	for _, h := range hits {
		if h.RegionID != "" {
			id = h.RegionID
			break
		}
	}
	if id == "" {
		return ""
	}
	rec, err := r.reg.Get(id)
	if err != nil {
		logger.L().Debug("label_lookup_failed", "id", id, "err", err)
		return ""
	}
	v, err := rec.Value(p)
	if err != nil {
		logger.L().Debug("label_value_failed", "id", id, "period", p, "err", err)
		return ""
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, Fields{ID: id, Name: rec.Name, Value: FormatValue(v)}); err != nil {
		logger.L().Debug("label_render_failed", "id", id, "err", err)
		return ""
	}
	return buf.String()
}

// FormatValue groups thousands and drops the fraction of integral values.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return humanize.Comma(int64(v))
	}
	return humanize.Commaf(v)
}
