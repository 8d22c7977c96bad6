package project

import "github.com/matzehuels/xptv/pkg/caps"

// StreamKind classifies the media a stream carries.
type StreamKind int

const (
	StreamUnknown StreamKind = iota
	StreamAudio
	StreamVideo
	StreamText
)

// Qualified stream type names as written in project files.
const (
	TypeAudioStream = "pitivi.stream.AudioStream"
	TypeVideoStream = "pitivi.stream.VideoStream"
	TypeTextStream  = "pitivi.stream.TextStream"
)

var streamTypeNames = map[StreamKind]string{
	StreamAudio: TypeAudioStream,
	StreamVideo: TypeVideoStream,
	StreamText:  TypeTextStream,
}

// String implements fmt.Stringer.
func (k StreamKind) String() string {
	switch k {
	case StreamAudio:
		return "audio"
	case StreamVideo:
		return "video"
	case StreamText:
		return "text"
	}
	return "unknown"
}

// Stream describes one media capability produced or consumed by a factory.
type Stream struct {
	handle Handle

	Kind StreamKind
	Caps caps.Caps
}

// NewStream returns a stream of the given kind.
func NewStream(kind StreamKind, c caps.Caps) *Stream {
	return &Stream{handle: newHandle(), Kind: kind, Caps: c}
}

func NewAudioStream(c caps.Caps) *Stream { return NewStream(StreamAudio, c) }
func NewVideoStream(c caps.Caps) *Stream { return NewStream(StreamVideo, c) }
func NewTextStream(c caps.Caps) *Stream  { return NewStream(StreamText, c) }

func (s *Stream) Handle() Handle { return s.handle }

// TypeName returns the qualified type name, or "" for unknown kinds.
func (s *Stream) TypeName() string { return streamTypeNames[s.Kind] }

// Compatible reports whether o carries the same kind of media as s.
func (s *Stream) Compatible(o *Stream) bool {
	return o != nil && s.Kind == o.Kind
}
