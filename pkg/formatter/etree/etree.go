package etree

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter"
	"github.com/matzehuels/xptv/pkg/observability"
	"github.com/matzehuels/xptv/pkg/project"
)

const (
	// FormatName is the value of the root formatter attribute.
	FormatName = "etree"

	// Version is the document version written by this package.
	Version = "0.1"

	// Extension is the file extension recognized by [Formatter.CanHandle].
	Extension = ".xptv"
)

// Formatter reads and writes legacy project files.
//
// A Formatter holds no per-call state and may be shared; every Save and
// Load uses a fresh context.
type Formatter struct {
	registry *project.Registry
	logger   *log.Logger
	strict   bool
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithRegistry sets the type registry used to resolve type attributes.
func WithRegistry(r *project.Registry) Option {
	return func(f *Formatter) {
		if r != nil {
			f.registry = r
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithStrict controls header checking on load. In strict mode (the
// default) the root element must carry formatter="etree" and a version
// this package writes. Otherwise a mismatched header is logged and the
// document is read anyway.
func WithStrict(strict bool) Option {
	return func(f *Formatter) { f.strict = strict }
}

// New returns a formatter using [project.DefaultRegistry].
func New(opts ...Option) *Formatter {
	f := &Formatter{
		registry: project.DefaultRegistry(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		strict:   true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ formatter.Formatter = (*Formatter)(nil)

// Name returns [FormatName].
func (f *Formatter) Name() string { return FormatName }

// CanHandle reports whether uri has the project file extension.
func (f *Formatter) CanHandle(uri string) bool {
	return strings.HasSuffix(uri, Extension)
}

// Serialize builds the document for p. Only source factories are written.
// A track object or timeline object that refers to a factory, stream or
// track object that was not written fails with DANGLING_REFERENCE.
func (f *Formatter) Serialize(p *project.Project) (*Document, error) {
	if p == nil {
		return nil, xerrors.New(xerrors.ErrCodeInvalidInput, "nil project")
	}
	return newSaveContext(f.logger).serialize(p)
}

// Write serializes p to w.
func (f *Formatter) Write(w io.Writer, p *project.Project) error {
	doc, err := f.Serialize(p)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

// Save writes p to the file at uri and records uri on p. The file is
// written in place; a failed save can leave a partial file behind.
func (f *Formatter) Save(ctx context.Context, p *project.Project, uri string) (err error) {
	hooks := observability.Formatter()
	hooks.OnSaveStart(ctx, FormatName, uri)
	start := time.Now()
	defer func() {
		var stats observability.ProjectStats
		if p != nil {
			stats = formatter.Stats(p)
		}
		hooks.OnSaveComplete(ctx, FormatName, uri, stats, time.Since(start), err)
	}()

	path, err := formatter.PathFromURI(uri)
	if err != nil {
		return err
	}
	f.logger.Debug("saving project", "path", path)

	// A failed serialization leaves an existing file untouched.
	doc, err := f.Serialize(p)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "write %s", path)
	}
	p.URI = uri
	return nil
}

// Read loads a document from r into p, which must be empty. On error p is
// left unchanged.
func (f *Formatter) Read(r io.Reader, p *project.Project) error {
	if err := checkTarget(p); err != nil {
		return err
	}
	doc, err := Parse(r)
	if err != nil {
		return err
	}
	return f.Decode(doc, p)
}

// Decode ingests a parsed document into p, which must be empty.
func (f *Formatter) Decode(doc *Document, p *project.Project) error {
	if err := checkTarget(p); err != nil {
		return err
	}
	if err := f.checkHeader(doc); err != nil {
		return err
	}
	lc := newLoadContext(f.registry, f.logger)
	if err := lc.load(doc); err != nil {
		return err
	}
	return lc.commit(p)
}

// Load reads the file at uri into p. On success p.URI is set to uri and an
// unnamed project takes the file's base name.
func (f *Formatter) Load(ctx context.Context, uri string, p *project.Project) (err error) {
	hooks := observability.Formatter()
	hooks.OnLoadStart(ctx, FormatName, uri)
	start := time.Now()
	defer func() {
		var stats observability.ProjectStats
		if err == nil {
			stats = formatter.Stats(p)
		}
		hooks.OnLoadComplete(ctx, FormatName, uri, stats, time.Since(start), err)
	}()

	path, err := formatter.PathFromURI(uri)
	if err != nil {
		return err
	}
	f.logger.Debug("loading project", "path", path)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return xerrors.Wrap(xerrors.ErrCodeFileNotFound, err, "project file %s", path)
		}
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()

	if err := f.Read(file, p); err != nil {
		return err
	}
	p.URI = uri
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), Extension)
	}
	return nil
}

func (f *Formatter) checkHeader(doc *Document) error {
	if doc.Formatter == FormatName && doc.Version == Version {
		return nil
	}
	if f.strict {
		return xerrors.New(xerrors.ErrCodeStructural,
			"unsupported document header formatter=%q version=%q", doc.Formatter, doc.Version)
	}
	f.logger.Warn("unexpected document header", "formatter", doc.Formatter, "version", doc.Version)
	return nil
}

func checkTarget(p *project.Project) error {
	if p == nil {
		return xerrors.New(xerrors.ErrCodeInvalidInput, "nil project")
	}
	if !p.IsEmpty() {
		return xerrors.New(xerrors.ErrCodeInvalidInput, "project %q is not empty", p.Name)
	}
	return nil
}
