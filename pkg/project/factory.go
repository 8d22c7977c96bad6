package project

import (
	"path"
	"strings"
)

// Qualified factory type names as written in project files.
const (
	TypeSourceFactory          = "pitivi.factories.base.SourceFactory"
	TypeFileSourceFactory      = "pitivi.factories.file.FileSourceFactory"
	TypeVideoTestSourceFactory = "pitivi.factories.test.VideoTestSourceFactory"
	TypeAudioTestSourceFactory = "pitivi.factories.test.AudioTestSourceFactory"
	TypeEffectFactory          = "pitivi.factories.operation.EffectFactory"
)

// Factory produces or transforms media. Streams are kept in the order they
// were added.
type Factory interface {
	Handle() Handle
	TypeName() string
	Name() string
	// IsSource reports whether the factory produces media on its own.
	IsSource() bool
	InputStreams() []*Stream
	OutputStreams() []*Stream
	AddInputStream(*Stream)
	AddOutputStream(*Stream)
}

// FileBacked is implemented by factories that read from a location.
type FileBacked interface {
	Factory
	Location() string
}

type baseFactory struct {
	handle  Handle
	name    string
	inputs  []*Stream
	outputs []*Stream
}

func newBaseFactory(name string) baseFactory {
	return baseFactory{handle: newHandle(), name: name}
}

func (f *baseFactory) Handle() Handle            { return f.handle }
func (f *baseFactory) Name() string              { return f.name }
func (f *baseFactory) InputStreams() []*Stream   { return append([]*Stream(nil), f.inputs...) }
func (f *baseFactory) OutputStreams() []*Stream  { return append([]*Stream(nil), f.outputs...) }
func (f *baseFactory) AddInputStream(s *Stream)  { f.inputs = append(f.inputs, s) }
func (f *baseFactory) AddOutputStream(s *Stream) { f.outputs = append(f.outputs, s) }

// SourceFactory is a generic media source.
type SourceFactory struct {
	baseFactory
}

// NewSourceFactory returns a source factory with no streams.
func NewSourceFactory(name string) *SourceFactory {
	return &SourceFactory{baseFactory: newBaseFactory(name)}
}

func (f *SourceFactory) TypeName() string { return TypeSourceFactory }
func (f *SourceFactory) IsSource() bool   { return true }

// FileSourceFactory is a source reading a media file.
type FileSourceFactory struct {
	SourceFactory

	// Filename is the file location, usually a file:// URI.
	Filename string
}

// NewFileSourceFactory returns a file source named after the last path
// element of filename.
func NewFileSourceFactory(filename string) *FileSourceFactory {
	name := path.Base(strings.TrimPrefix(filename, "file://"))
	return &FileSourceFactory{
		SourceFactory: SourceFactory{baseFactory: newBaseFactory(name)},
		Filename:      filename,
	}
}

func (f *FileSourceFactory) TypeName() string { return TypeFileSourceFactory }
func (f *FileSourceFactory) Location() string { return f.Filename }

// TestSourceFactory generates a test pattern or tone.
type TestSourceFactory struct {
	SourceFactory

	kind StreamKind
}

// NewTestSourceFactory returns a generator for kind, which must be
// StreamAudio or StreamVideo.
func NewTestSourceFactory(kind StreamKind) *TestSourceFactory {
	return &TestSourceFactory{
		SourceFactory: SourceFactory{baseFactory: newBaseFactory(kind.String() + "-test")},
		kind:          kind,
	}
}

func (f *TestSourceFactory) TypeName() string {
	if f.kind == StreamAudio {
		return TypeAudioTestSourceFactory
	}
	return TypeVideoTestSourceFactory
}

// EffectFactory applies a named effect to its input streams. It is not a
// source.
type EffectFactory struct {
	baseFactory

	Effect string
}

// NewEffectFactory returns an effect factory for the named effect.
func NewEffectFactory(effect string) *EffectFactory {
	return &EffectFactory{baseFactory: newBaseFactory(effect), Effect: effect}
}

func (f *EffectFactory) TypeName() string { return TypeEffectFactory }
func (f *EffectFactory) IsSource() bool   { return false }

var (
	_ Factory    = (*SourceFactory)(nil)
	_ FileBacked = (*FileSourceFactory)(nil)
	_ Factory    = (*TestSourceFactory)(nil)
	_ Factory    = (*EffectFactory)(nil)
)
