// Package project models the editing graph that project files describe.
//
// # Overview
//
// A [Project] owns a list of media factories ([SourceList]) and a
// [Timeline]. The graph has four layers:
//
//   - [Factory]: produces media. Source factories expose output [Stream]s;
//     a [FileSourceFactory] reads a file location.
//   - [Track]: a lane carrying one kind of stream. It holds ordered
//     [TrackObject]s, one of which is the track's default object.
//   - [TrackObject]: one placement of a factory/stream pair on a track, with
//     start, duration, in-point, media-duration and priority.
//   - [TimelineObject]: a logical clip grouping the track objects that
//     realize one factory across tracks.
//
// All time values are integer nanoseconds ([Second]).
//
// # Handles
//
// Every entity carries a [Handle] generated at construction. Code that needs
// to associate data with entities (serializer contexts, caches, graphs) keys
// its maps by handle rather than by pointer.
//
// # Type Registry
//
// Project files name concrete classes by their qualified type name. A
// [Registry] maps those names to constructors for factories, streams and
// track objects. [DefaultRegistry] knows every variant in this package; the
// set is closed unless a caller registers more.
//
// # Default Track Objects
//
// [NewTrack] creates the track's default object as a side effect. It has no
// factory, sits below every other object and is never written to project
// files; [Track.SourceObjects] excludes it.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent mutation. A project is
// built and consumed by one goroutine at a time.
package project
