package project

import (
	"fmt"
	"slices"

	"github.com/matzehuels/xptv/pkg/caps"
)

// AttrFilename is the factory attribute holding a file location.
const AttrFilename = "filename"

// FactoryConstructor builds a factory from its document attributes.
type FactoryConstructor func(attrs map[string]string) (Factory, error)

// StreamConstructor builds a stream from its capabilities.
type StreamConstructor func(c caps.Caps) *Stream

// TrackObjectConstructor builds a track object for a factory/stream pair.
type TrackObjectConstructor func(f Factory, s *Stream) (*TrackObject, error)

// Registry maps qualified type names to constructors.
// It is not safe for concurrent registration; populate it at startup.
type Registry struct {
	factories    map[string]FactoryConstructor
	streams      map[string]StreamConstructor
	trackObjects map[string]TrackObjectConstructor
}

// NewRegistry returns a registry with no types.
func NewRegistry() *Registry {
	return &Registry{
		factories:    make(map[string]FactoryConstructor),
		streams:      make(map[string]StreamConstructor),
		trackObjects: make(map[string]TrackObjectConstructor),
	}
}

// DefaultRegistry returns a registry holding every type in this package.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RegisterFactory(TypeFileSourceFactory, func(attrs map[string]string) (Factory, error) {
		filename := attrs[AttrFilename]
		if filename == "" {
			return nil, fmt.Errorf("%w: %s requires %q", ErrMissingAttribute, TypeFileSourceFactory, AttrFilename)
		}
		return NewFileSourceFactory(filename), nil
	})
	r.RegisterFactory(TypeSourceFactory, func(map[string]string) (Factory, error) {
		return NewSourceFactory(""), nil
	})
	r.RegisterFactory(TypeVideoTestSourceFactory, func(map[string]string) (Factory, error) {
		return NewTestSourceFactory(StreamVideo), nil
	})
	r.RegisterFactory(TypeAudioTestSourceFactory, func(map[string]string) (Factory, error) {
		return NewTestSourceFactory(StreamAudio), nil
	})
	r.RegisterFactory(TypeEffectFactory, func(attrs map[string]string) (Factory, error) {
		return NewEffectFactory(attrs["effect"]), nil
	})

	r.RegisterStream(TypeAudioStream, NewAudioStream)
	r.RegisterStream(TypeVideoStream, NewVideoStream)
	r.RegisterStream(TypeTextStream, NewTextStream)

	r.RegisterTrackObject(TypeSourceTrackObject, func(f Factory, s *Stream) (*TrackObject, error) {
		if f == nil || s == nil {
			return nil, fmt.Errorf("%w: %s needs a factory and a stream", ErrMissingAttribute, TypeSourceTrackObject)
		}
		return NewTrackObject(f, s), nil
	})

	return r
}

func (r *Registry) RegisterFactory(name string, ctor FactoryConstructor) {
	r.factories[name] = ctor
}

func (r *Registry) RegisterStream(name string, ctor StreamConstructor) {
	r.streams[name] = ctor
}

func (r *Registry) RegisterTrackObject(name string, ctor TrackObjectConstructor) {
	r.trackObjects[name] = ctor
}

// NewFactory constructs the factory registered under name.
func (r *Registry) NewFactory(name string, attrs map[string]string) (Factory, error) {
	ctor, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: factory %q", ErrUnknownType, name)
	}
	return ctor(attrs)
}

// NewStream constructs the stream registered under name.
func (r *Registry) NewStream(name string, c caps.Caps) (*Stream, error) {
	ctor, ok := r.streams[name]
	if !ok {
		return nil, fmt.Errorf("%w: stream %q", ErrUnknownType, name)
	}
	return ctor(c), nil
}

// NewTrackObject constructs the track object registered under name.
func (r *Registry) NewTrackObject(name string, f Factory, s *Stream) (*TrackObject, error) {
	ctor, ok := r.trackObjects[name]
	if !ok {
		return nil, fmt.Errorf("%w: track object %q", ErrUnknownType, name)
	}
	return ctor(f, s)
}

// FactoryTypes returns the registered factory type names, sorted.
func (r *Registry) FactoryTypes() []string {
	return sortedKeys(r.factories)
}

// StreamTypes returns the registered stream type names, sorted.
func (r *Registry) StreamTypes() []string {
	return sortedKeys(r.streams)
}

// TrackObjectTypes returns the registered track object type names, sorted.
func (r *Registry) TrackObjectTypes() []string {
	return sortedKeys(r.trackObjects)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
