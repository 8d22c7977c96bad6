package project

import "fmt"

// Track is a lane of one stream kind holding ordered track objects.
type Track struct {
	handle Handle

	Stream *Stream

	objects []*TrackObject
	def     *TrackObject
}

// NewTrack returns a track for s with its default object in place.
func NewTrack(s *Stream) *Track {
	t := &Track{handle: newHandle(), Stream: s}
	t.def = &TrackObject{
		handle:    newHandle(),
		Stream:    s,
		Priority:  DefaultPriority,
		track:     t,
		isDefault: true,
	}
	t.objects = []*TrackObject{t.def}
	return t
}

func (t *Track) Handle() Handle { return t.handle }

// Default returns the track's default object.
func (t *Track) Default() *TrackObject { return t.def }

// Objects returns every object on the track, default first.
func (t *Track) Objects() []*TrackObject {
	return append([]*TrackObject(nil), t.objects...)
}

// SourceObjects returns the objects on the track except the default one,
// in insertion order.
func (t *Track) SourceObjects() []*TrackObject {
	out := make([]*TrackObject, 0, len(t.objects)-1)
	for _, o := range t.objects {
		if o != t.def {
			out = append(out, o)
		}
	}
	return out
}

// Contains reports whether o is on t.
func (t *Track) Contains(o *TrackObject) bool { return o != nil && o.track == t }

// AddTrackObject appends o. The object's stream must be of the track's kind.
func (t *Track) AddTrackObject(o *TrackObject) error {
	if o.track != nil {
		return ErrAlreadyInTrack
	}
	if !t.Stream.Compatible(o.Stream) {
		return fmt.Errorf("%w: %s object on %s track", ErrStreamMismatch, streamKindOf(o.Stream), t.Stream.Kind)
	}
	o.track = t
	t.objects = append(t.objects, o)
	return nil
}

// RemoveTrackObject detaches o from t.
func (t *Track) RemoveTrackObject(o *TrackObject) error {
	if o == t.def {
		return ErrDefaultTrackObject
	}
	for i, cur := range t.objects {
		if cur == o {
			t.objects = append(t.objects[:i], t.objects[i+1:]...)
			o.track = nil
			return nil
		}
	}
	return ErrNotInTrack
}

// Duration returns the end of the last non-default object.
func (t *Track) Duration() int64 {
	var end int64
	for _, o := range t.objects {
		if o != t.def && o.End() > end {
			end = o.End()
		}
	}
	return end
}

func streamKindOf(s *Stream) StreamKind {
	if s == nil {
		return StreamUnknown
	}
	return s.Kind
}
