// Package scene owns the per-period generation of region meshes and hands
// them to a rendering scene.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"choromap/internal/logger"
	"choromap/internal/metrics"
	"choromap/internal/region"
	"choromap/internal/scale"
)

var ErrRebuildInProgress = errors.New("rebuild already in progress")

// Scene is the rendering engine boundary.
type Scene interface {
	Add(m *Mesh)
	Remove(m *Mesh)
}

type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Manager replaces the whole mesh generation on every period change.
type Manager struct {
	scene     Scene
	reg       *region.Registry
	enc       scale.Encoding
	style     Style
	placement mgl64.Mat4
	log       *slog.Logger

	mu       sync.Mutex
	building bool
	period   region.Period
	meshes   []*Mesh
}

func NewManager(s Scene, reg *region.Registry, enc scale.Encoding, style Style, placement Placement) *Manager {
	return &Manager{
		scene:     s,
		reg:       reg,
		enc:       enc,
		style:     style,
		placement: placement.Matrix(),
		log:       logger.L(),
	}
}

// Rebuild builds the generation for p, then swaps it into the scene. An
// unknown period leaves the current generation in place. Records without a
// contour, or without a value for p, get no mesh.
func (m *Manager) Rebuild(p region.Period) error {
	m.mu.Lock()
	if m.building {
		m.mu.Unlock()
		return ErrRebuildInProgress
	}
	m.building = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.building = false
		m.mu.Unlock()
	}()

	if !m.reg.HasPeriod(p) {
		metrics.RebuildsTotal.WithLabelValues("missing_period").Inc()
		return fmt.Errorf("rebuild: %w: %s", region.ErrMissingPeriod, p)
	}
	next := make([]*Mesh, 0, m.reg.Len())
	for _, e := range m.reg.Entries() {
		if !e.Record.Renderable() {
			continue
		}
		v, err := e.Record.Value(p)
		if err != nil {
			m.log.Warn("rebuild_skip_region", "id", e.ID, "err", err)
			continue
		}
		next = append(next, m.mesh(e.ID, p, v, e.Record))
	}

	old := m.swap(p, next)
	for _, mesh := range old {
		m.scene.Remove(mesh)
	}
	for _, mesh := range next {
		m.scene.Add(mesh)
	}
	metrics.RebuildsTotal.WithLabelValues("ok").Inc()
	metrics.LiveMeshes.Set(float64(len(next)))
	m.log.Debug("rebuild_done", "period", p, "meshes", len(next), "removed", len(old))
	return nil
}

func (m *Manager) mesh(id region.ID, p region.Period, v float64, rec region.Record) *Mesh {
	ext := m.enc.Extrusion.At(v)
	lum := m.enc.Luminance.At(v)
	return &Mesh{
		RegionID:  id,
		Period:    p,
		Value:     v,
		Extrusion: ext,
		Luminance: lum,
		Color:     m.style.Color(lum),
		Solid:     Extrude(rec.Contour, ext),
		Transform: m.placement.Mul4(mgl64.Translate3D(0, 0, -ext)),
	}
}

func (m *Manager) swap(p region.Period, next []*Mesh) []*Mesh {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.meshes
	m.meshes = next
	m.period = p
	return old
}

// Clear removes every mesh and returns the manager to Empty.
func (m *Manager) Clear() {
	m.mu.Lock()
	old := m.meshes
	m.meshes = nil
	m.period = ""
	m.mu.Unlock()
	for _, mesh := range old {
		m.scene.Remove(mesh)
	}
	metrics.LiveMeshes.Set(0)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.period == "" {
		return Empty
	}
	return Populated
}

// Period is the period of the live generation, empty when none.
func (m *Manager) Period() region.Period {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}

// Meshes returns the live generation.
func (m *Manager) Meshes() []*Mesh {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Mesh(nil), m.meshes...)
}
