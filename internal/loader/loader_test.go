package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func stub(v any, err error) FetchFunc {
	return func(ctx context.Context, src Source) (any, error) { return v, err }
}

func TestLoadThenAllSucceed(t *testing.T) {
	l := New(nil)
	l.Handle("a", stub("dataA", nil))
	l.Handle("b", stub("dataB", nil))

	var calls int32
	var got Results
	err := l.LoadThen(context.Background(), []Source{{Key: "x", Kind: "a"}, {Key: "y", Kind: "b"}}, func(r Results) {
		atomic.AddInt32(&calls, 1)
		got = r
	})
	if err != nil {
		t.Fatalf("LoadThen: %v", err)
	}
	if calls != 1 {
		t.Fatalf("onComplete called %d times, want 1", calls)
	}
	if got["x"] != "dataA" || got["y"] != "dataB" || len(got) != 2 {
		t.Fatalf("unexpected results: %v", got)
	}
}

func TestLoadThenFailure(t *testing.T) {
	l := New(nil)
	boom := errors.New("boom")
	l.Handle("a", stub("dataA", nil))
	l.Handle("b", stub(nil, boom))

	called := false
	err := l.LoadThen(context.Background(), []Source{{Key: "x", Kind: "a"}, {Key: "y", Kind: "b", Path: "b.csv"}}, func(Results) {
		called = true
	})
	if called {
		t.Fatal("onComplete must not run when a source fails")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if le.Key != "y" || le.Path != "b.csv" || !errors.Is(err, boom) {
		t.Fatalf("unexpected LoadError: %+v", le)
	}
}

func TestLoadCancelsSiblings(t *testing.T) {
	l := New(nil)
	l.Handle("slow", func(ctx context.Context, src Source) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	l.Handle("bad", stub(nil, errors.New("bad")))
	_, err := l.Load(context.Background(), []Source{{Key: "s", Kind: "slow"}, {Key: "b", Kind: "bad"}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadValidation(t *testing.T) {
	l := New(nil)
	tests := []struct {
		name    string
		sources []Source
	}{
		{"empty", nil},
		{"duplicate key", []Source{{Key: "x", Kind: KindCSV}, {Key: "x", Kind: KindCSV}}},
		{"unknown kind", []Source{{Key: "x", Kind: "xml"}}},
		{"missing key", []Source{{Kind: KindCSV, Path: "a.csv"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Load(context.Background(), tt.sources); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadBuiltinKinds(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		{Key: "judete", Kind: KindGeoJSON, Path: writeFile(t, dir, "ro.geojson",
			`{"type":"FeatureCollection","features":[{"type":"Feature","id":"AB","properties":{"name":"Alba"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`)},
		{Key: "id_judete", Kind: KindJSON, Path: writeFile(t, dir, "ids.json", `{"Alba":"AB","Cluj":"CJ"}`)},
		{Key: "recensaminte", Kind: KindCSV, Path: writeFile(t, dir, "census.csv", "name,2011\nAlba,342376\n")},
		{Key: "zips", Kind: KindWKTCSV, Path: writeFile(t, dir, "zips.csv", "id,name,wkt\n94110,Mission,\"POLYGON((0 0, 1 0, 1 1, 0 0))\"\n")},
		{Key: "sfzips", Kind: KindTopoJSON, Object: "sfzips", Path: writeFile(t, dir, "sf.json",
			`{"type":"Topology","arcs":[[[0,0],[1,0],[1,1],[0,0]]],"objects":{"sfzips":{"type":"GeometryCollection","geometries":[{"type":"Polygon","id":94110,"arcs":[[0]]}]}}}`)},
	}
	res, err := New(nil).Load(context.Background(), sources)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fc, err := res.Features("judete")
	if err != nil || len(fc.Features) != 1 {
		t.Fatalf("Features = %v, %v", fc, err)
	}
	ids, err := res.Lookup("id_judete")
	if err != nil || ids["Cluj"] != "CJ" {
		t.Fatalf("Lookup = %v, %v", ids, err)
	}
	tbl, err := res.Table("recensaminte")
	if err != nil || len(tbl.Rows) != 1 || tbl.Header[1] != "2011" {
		t.Fatalf("Table = %+v, %v", tbl, err)
	}
	zips, err := res.Features("zips")
	if err != nil || len(zips.Features) != 1 {
		t.Fatalf("WKT features = %v, %v", zips, err)
	}
	topo, err := res.Features("sfzips")
	if err != nil || len(topo.Features) != 1 || topo.Features[0].ID != float64(94110) {
		t.Fatalf("TopoJSON features = %v, %v", topo, err)
	}
	if _, err := res.Table("judete"); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(nil).Load(context.Background(), []Source{{Key: "x", Kind: KindCSV, Path: filepath.Join(t.TempDir(), "nope.csv")}})
	var le *LoadError
	if !errors.As(err, &le) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected LoadError wrapping ErrNotExist, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ids.json":
			w.Write([]byte(`{"Alba":"AB"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(srv.Client())
	res, err := l.Load(context.Background(), []Source{{Key: "ids", Kind: KindJSON, Path: srv.URL + "/ids.json"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m, _ := res.Lookup("ids"); m["Alba"] != "AB" {
		t.Fatalf("unexpected lookup: %v", m)
	}
	if _, err := l.Load(context.Background(), []Source{{Key: "ids", Kind: KindJSON, Path: srv.URL + "/missing.json"}}); err == nil {
		t.Fatal("expected error for 404")
	}
}
