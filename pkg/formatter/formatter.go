// Package formatter defines the contract shared by project file formatters.
//
// A formatter turns a [project.Project] into a document at a location and
// back. Formatters register themselves by name; [For] picks the first one
// whose [Formatter.CanHandle] accepts a location.
//
// Locations are file:// URIs or plain filesystem paths. [PathFromURI] and
// [URIFromPath] convert between the two forms.
package formatter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/observability"
	"github.com/matzehuels/xptv/pkg/project"
)

// ErrNoFormatter is returned by [For] when no registered formatter accepts
// a location.
var ErrNoFormatter = errors.New("no formatter for location")

// Formatter saves and loads projects.
type Formatter interface {
	// Name identifies the formatter in logs and file headers.
	Name() string

	// CanHandle reports whether the formatter reads and writes uri.
	CanHandle(uri string) bool

	// Save writes p to uri.
	Save(ctx context.Context, p *project.Project, uri string) error

	// Load reads uri into p. On error p is left unchanged.
	Load(ctx context.Context, uri string, p *project.Project) error
}

var (
	mu         sync.RWMutex
	formatters []Formatter
)

// Register adds f to the set consulted by [For]. A formatter with the same
// name replaces the earlier registration in place.
func Register(f Formatter) {
	mu.Lock()
	defer mu.Unlock()
	for i, cur := range formatters {
		if cur.Name() == f.Name() {
			formatters[i] = f
			return
		}
	}
	formatters = append(formatters, f)
}

// Formatters returns the registered formatters in registration order.
func Formatters() []Formatter {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Formatter(nil), formatters...)
}

// For returns the first registered formatter that can handle uri.
func For(uri string) (Formatter, error) {
	mu.RLock()
	defer mu.RUnlock()
	for _, f := range formatters {
		if f.CanHandle(uri) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoFormatter, uri)
}

// PathFromURI returns the filesystem path of a location. Plain paths pass
// through unchanged.
func PathFromURI(uri string) (string, error) {
	if err := xerrors.ValidateLocation(uri); err != nil {
		return "", err
	}
	if !strings.HasPrefix(uri, "file://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrCodeInvalidPath, err, "parse %q", uri)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", xerrors.New(xerrors.ErrCodeInvalidPath, "remote file host %q is not supported", u.Host)
	}
	return filepath.FromSlash(u.Path), nil
}

// URIFromPath returns the file:// URI of path, made absolute.
func URIFromPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrCodeInvalidPath, err, "resolve %q", path)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// Stats summarizes p for hooks and command output.
func Stats(p *project.Project) observability.ProjectStats {
	s := observability.ProjectStats{Sources: p.Sources.Len()}
	for _, t := range p.Timeline.Tracks() {
		s.Tracks++
		s.TrackObjects += len(t.SourceObjects())
	}
	s.TimelineObjects = len(p.Timeline.TimelineObjects())
	return s
}
