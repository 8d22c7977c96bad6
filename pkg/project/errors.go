package project

import "errors"

var (
	// ErrUnknownType is returned by [Registry] lookups for unregistered
	// type names.
	ErrUnknownType = errors.New("unknown type")

	// ErrMissingAttribute is returned by factory constructors when a
	// required attribute (such as a file location) is absent.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrUnknownProperty is returned by [TrackObject.SetProperty] for names
	// that have no settable counterpart.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrPropertyType is returned by [TrackObject.SetProperty] when the value
	// kind cannot be assigned to the property.
	ErrPropertyType = errors.New("property type mismatch")

	// ErrStreamMismatch is returned by [Track.AddTrackObject] when the
	// object's stream is not of the track's kind.
	ErrStreamMismatch = errors.New("stream does not match track")

	// ErrAlreadyInTrack is returned when adding a track object that already
	// belongs to a track.
	ErrAlreadyInTrack = errors.New("track object already in a track")

	// ErrNotInTrack is returned when removing a track object the track does
	// not hold.
	ErrNotInTrack = errors.New("track object not in track")

	// ErrDefaultTrackObject is returned when removing a track's default
	// object.
	ErrDefaultTrackObject = errors.New("cannot remove default track object")

	// ErrAlreadyAttached is returned when a track object is added to a second
	// timeline object.
	ErrAlreadyAttached = errors.New("track object already attached to a timeline object")

	// ErrDuplicateTrack is returned when a track is added to a timeline twice.
	ErrDuplicateTrack = errors.New("track already in timeline")

	// ErrOrphanTrackObject is returned by [Timeline.Validate] when a timeline
	// object references a track object that sits on none of the timeline's
	// tracks.
	ErrOrphanTrackObject = errors.New("track object not on a timeline track")
)
