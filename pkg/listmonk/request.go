package listmonk

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Request describes one call. It is built fresh per call.
type Request struct {
	Method string
	Path   string

	// Query values are rendered with fmt.Sprint; nil values are skipped.
	Query map[string]any

	// Body is sent as JSON when non-nil.
	Body map[string]any
}

var errEscapesBase = errors.New("path escapes base URL")

// resolve joins path onto base, which is treated as a directory. Absolute
// URLs and paths climbing above base are rejected.
func resolve(base *url.URL, path string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, fmt.Errorf("%w: %q", errEscapesBase, path)
	}
	u := base.ResolveReference(ref)
	if !strings.HasPrefix(u.Path, base.Path) {
		return nil, fmt.Errorf("%w: %q", errEscapesBase, path)
	}
	return u, nil
}

// directoryURL parses a base URL and guarantees a trailing slash on its path.
func directoryURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// encodeQuery renders q with keys sorted for stable URLs.
func encodeQuery(q map[string]any) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		if q[k] == nil {
			continue
		}
		values.Set(k, fmt.Sprint(q[k]))
	}
	return values.Encode()
}

// route collapses numeric path segments so metrics and logs keep a bounded
// set of labels: /api/subscribers/12 becomes /api/subscribers/:id.
func route(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}
