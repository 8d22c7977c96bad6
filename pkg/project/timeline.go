package project

import "fmt"

// TimelineObject is a logical clip: one factory realized by track objects
// across tracks.
type TimelineObject struct {
	handle Handle

	Factory Factory

	trackObjects []*TrackObject
}

// NewTimelineObject returns a timeline object for f with no track objects.
func NewTimelineObject(f Factory) *TimelineObject {
	return &TimelineObject{handle: newHandle(), Factory: f}
}

func (t *TimelineObject) Handle() Handle { return t.handle }

// TrackObjects returns the attached track objects in order.
func (t *TimelineObject) TrackObjects() []*TrackObject {
	return append([]*TrackObject(nil), t.trackObjects...)
}

// AddTrackObject attaches o. A track object belongs to at most one timeline
// object.
func (t *TimelineObject) AddTrackObject(o *TrackObject) error {
	if o.timelineObject != nil {
		return ErrAlreadyAttached
	}
	o.timelineObject = t
	t.trackObjects = append(t.trackObjects, o)
	return nil
}

// Timeline owns the tracks and the timeline objects of a project.
type Timeline struct {
	tracks  []*Track
	objects []*TimelineObject
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline { return &Timeline{} }

// Tracks returns the tracks in order.
func (tl *Timeline) Tracks() []*Track { return append([]*Track(nil), tl.tracks...) }

// TimelineObjects returns the timeline objects in order.
func (tl *Timeline) TimelineObjects() []*TimelineObject {
	return append([]*TimelineObject(nil), tl.objects...)
}

// AddTrack appends t.
func (tl *Timeline) AddTrack(t *Track) error {
	for _, cur := range tl.tracks {
		if cur == t {
			return ErrDuplicateTrack
		}
	}
	tl.tracks = append(tl.tracks, t)
	return nil
}

// AddTimelineObject appends o. It does not check that o's track objects are
// on this timeline's tracks; see [Timeline.Validate].
func (tl *Timeline) AddTimelineObject(o *TimelineObject) {
	tl.objects = append(tl.objects, o)
}

// Validate checks that every track object referenced by a timeline object
// sits on one of the timeline's tracks.
func (tl *Timeline) Validate() error {
	onTimeline := make(map[*Track]bool, len(tl.tracks))
	for _, t := range tl.tracks {
		onTimeline[t] = true
	}
	for i, obj := range tl.objects {
		for j, o := range obj.trackObjects {
			if o.track == nil || !onTimeline[o.track] {
				return fmt.Errorf("%w: timeline object %d, track object %d", ErrOrphanTrackObject, i, j)
			}
		}
	}
	return nil
}

// Duration returns the end of the last object on any track.
func (tl *Timeline) Duration() int64 {
	var end int64
	for _, t := range tl.tracks {
		if d := t.Duration(); d > end {
			end = d
		}
	}
	return end
}
