package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"choromap/internal/geom"
	"choromap/internal/ingest"
)

// open reads a local file or an http(s) URL.
func (l *Loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("http status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}
	return os.Open(path)
}

func (l *Loader) fetchLookup(ctx context.Context, src Source) (any, error) {
	rc, err := l.open(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var raw map[string]any
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("lookup %q: value is %T, want string", k, v)
		}
	}
	return out, nil
}

func (l *Loader) fetchTable(ctx context.Context, src Source) (any, error) {
	rc, err := l.open(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ingest.ReadCSV(rc)
}

func (l *Loader) fetchFeatures(ctx context.Context, src Source) (any, error) {
	rc, err := l.open(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return geom.DecodeFeatures(rc)
}

func (l *Loader) fetchTopology(ctx context.Context, src Source) (any, error) {
	rc, err := l.open(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return geom.DecodeTopology(rc, src.Object)
}

func (l *Loader) fetchWKT(ctx context.Context, src Source) (any, error) {
	rc, err := l.open(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	t, err := ingest.ReadCSV(rc)
	if err != nil {
		return nil, err
	}
	return geom.FeaturesFromWKT(t.Header, t.Rows, src.WKT)
}
