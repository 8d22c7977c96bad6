package project

import (
	"fmt"
	"math"

	"github.com/matzehuels/xptv/pkg/gstvalue"
)

// TypeSourceTrackObject is the qualified type name of [TrackObject].
const TypeSourceTrackObject = "pitivi.timeline.track.SourceTrackObject"

// Second is one second in the project clock unit (nanoseconds).
const Second int64 = 1_000_000_000

// DefaultPriority is the priority of a track's default object, below every
// regular object.
const DefaultPriority = math.MaxInt32

// Property names accepted by [TrackObject.SetProperty].
const (
	PropStart         = "start"
	PropDuration      = "duration"
	PropInPoint       = "in_point"
	PropMediaDuration = "media_duration"
	PropPriority      = "priority"
)

// Property is a named typed value.
type Property struct {
	Name  string
	Value gstvalue.Value
}

// TrackObject places a factory/stream pair on a track.
type TrackObject struct {
	handle Handle

	Factory Factory
	Stream  *Stream

	Start         int64
	Duration      int64
	InPoint       int64
	MediaDuration int64
	Priority      int

	track          *Track
	timelineObject *TimelineObject
	isDefault      bool
}

// NewTrackObject returns an unplaced track object for f and s.
func NewTrackObject(f Factory, s *Stream) *TrackObject {
	return &TrackObject{handle: newHandle(), Factory: f, Stream: s}
}

func (o *TrackObject) Handle() Handle   { return o.handle }
func (o *TrackObject) TypeName() string { return TypeSourceTrackObject }

// Track returns the track holding o, or nil.
func (o *TrackObject) Track() *Track { return o.track }

// TimelineObject returns the timeline object o is attached to, or nil.
func (o *TrackObject) TimelineObject() *TimelineObject { return o.timelineObject }

// IsDefault reports whether o is its track's default object.
func (o *TrackObject) IsDefault() bool { return o.isDefault }

// End returns Start + Duration.
func (o *TrackObject) End() int64 { return o.Start + o.Duration }

// Properties returns the serializable scalar attributes in file order.
func (o *TrackObject) Properties() []Property {
	return []Property{
		{PropStart, gstvalue.Int64(o.Start)},
		{PropDuration, gstvalue.Int64(o.Duration)},
		{PropInPoint, gstvalue.Int64(o.InPoint)},
		{PropMediaDuration, gstvalue.Int64(o.MediaDuration)},
		{PropPriority, gstvalue.Int(o.Priority)},
	}
}

// SetProperty assigns a scalar attribute by name. Integer values of any
// width are accepted as long as they fit the target.
func (o *TrackObject) SetProperty(name string, v gstvalue.Value) error {
	var target *int64
	switch name {
	case PropStart:
		target = &o.Start
	case PropDuration:
		target = &o.Duration
	case PropInPoint:
		target = &o.InPoint
	case PropMediaDuration:
		target = &o.MediaDuration
	case PropPriority:
		n, ok := v.AsInt64()
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("%w: %s cannot hold %v", ErrPropertyType, name, v)
		}
		o.Priority = int(n)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}

	n, ok := v.AsInt64()
	if !ok {
		return fmt.Errorf("%w: %s cannot hold %v", ErrPropertyType, name, v)
	}
	*target = n
	return nil
}
