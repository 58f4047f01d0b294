package viewstate

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	mem, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	file, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		mem.Close()
		file.Close()
	})
	return map[string]Store{"memory": NewMemory(), "sqlite-mem": mem, "sqlite-file": file}
}

func TestCameraRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := RestoreCamera(ctx, s); !errors.Is(err, ErrNotFound) {
				t.Fatalf("empty store: err = %v, want ErrNotFound", err)
			}
			want := Camera{Position: [3]float64{0, 40.5, -80}, Up: [3]float64{0, 1, 0}}
			if err := SaveCamera(ctx, s, want); err != nil {
				t.Fatalf("SaveCamera: %v", err)
			}
			got, err := RestoreCamera(ctx, s)
			if err != nil {
				t.Fatalf("RestoreCamera: %v", err)
			}
			if got != want {
				t.Fatalf("got %+v, want %+v", got, want)
			}
			raw, err := s.Get(ctx, KeyCameraPosition)
			if err != nil || string(raw) != "[0,40.5,-80]" {
				t.Fatalf("stored position = %q, %v", raw, err)
			}
		})
	}
}

func TestFragmentPerDataset(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := SaveFragment(ctx, s, "romania", "#/an/2002"); err != nil {
				t.Fatal(err)
			}
			if err := SaveFragment(ctx, s, "romania", "#/an/2011"); err != nil {
				t.Fatal(err)
			}
			got, err := RestoreFragment(ctx, s, "romania")
			if err != nil || got != "#/an/2011" {
				t.Fatalf("romania = %q, %v", got, err)
			}
			if _, err := RestoreFragment(ctx, s, "sfrents"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("sfrents err = %v", err)
			}
		})
	}
}

func TestRestoreCameraCorrupt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.Set(ctx, KeyCameraPosition, []byte("not json"))
	s.Set(ctx, KeyCameraUp, []byte("[0,1,0]"))
	if _, err := RestoreCamera(ctx, s); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want decode error", err)
	}
}

func TestSaveCameraRejectsNaN(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	err := SaveCamera(ctx, s, Camera{Position: [3]float64{math.NaN(), 0, 1}, Up: [3]float64{0, 1, 0}})
	if err == nil {
		t.Fatal("expected encode error for NaN position")
	}
	if _, err := s.Get(ctx, KeyCameraPosition); !errors.Is(err, ErrNotFound) {
		t.Fatalf("position stored despite encode error: %v", err)
	}
}
