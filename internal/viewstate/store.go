// Package viewstate persists the camera and the location fragment between
// runs.
package viewstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("view state key not found")

const (
	KeyCameraPosition = "camera.position"
	KeyCameraUp       = "camera.up"
)

// Store is a flat key/value space.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Close() error
}

// Camera is the orbit camera pose.
type Camera struct {
	Position [3]float64
	Up       [3]float64
}

// SaveCamera writes the pose as two JSON arrays.
func SaveCamera(ctx context.Context, s Store, c Camera) error {
	pos, err := json.Marshal(c.Position)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCameraPosition, err)
	}
	up, err := json.Marshal(c.Up)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCameraUp, err)
	}
	if err := s.Set(ctx, KeyCameraPosition, pos); err != nil {
		return fmt.Errorf("save %s: %w", KeyCameraPosition, err)
	}
	if err := s.Set(ctx, KeyCameraUp, up); err != nil {
		return fmt.Errorf("save %s: %w", KeyCameraUp, err)
	}
	return nil
}

// RestoreCamera reads a pose saved by SaveCamera. Both keys must be present.
func RestoreCamera(ctx context.Context, s Store) (Camera, error) {
	var c Camera
	for _, kv := range []struct {
		key string
		dst *[3]float64
	}{{KeyCameraPosition, &c.Position}, {KeyCameraUp, &c.Up}} {
		raw, err := s.Get(ctx, kv.key)
		if err != nil {
			return Camera{}, err
		}
		if err := json.Unmarshal(raw, kv.dst); err != nil {
			return Camera{}, fmt.Errorf("decode %s: %w", kv.key, err)
		}
	}
	return c, nil
}

func fragmentKey(dataset string) string { return "fragment." + dataset }

func SaveFragment(ctx context.Context, s Store, dataset, frag string) error {
	return s.Set(ctx, fragmentKey(dataset), []byte(frag))
}

func RestoreFragment(ctx context.Context, s Store, dataset string) (string, error) {
	b, err := s.Get(ctx, fragmentKey(dataset))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Memory keeps state for the lifetime of the process.
type Memory struct {
	mu sync.Mutex
	kv map[string][]byte
}

func NewMemory() *Memory { return &Memory{kv: map[string][]byte{}} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = append([]byte(nil), val...)
	return nil
}

func (m *Memory) Close() error { return nil }
