package etree

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xptv/pkg/caps"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/gstvalue"
	"github.com/matzehuels/xptv/pkg/project"
)

// loadContext resolves document ids during one load. Objects are collected
// here and handed to the project only after the whole document was read.
type loadContext struct {
	registry *project.Registry
	logger   *log.Logger

	ids          map[string]string // id -> element name, for duplicate detection
	streams      map[string]*project.Stream
	factories    map[string]project.Factory
	trackObjects map[string]*project.TrackObject

	sources  []project.Factory
	timeline *project.Timeline
}

func newLoadContext(registry *project.Registry, logger *log.Logger) *loadContext {
	return &loadContext{
		registry:     registry,
		logger:       logger,
		ids:          make(map[string]string),
		streams:      make(map[string]*project.Stream),
		factories:    make(map[string]project.Factory),
		trackObjects: make(map[string]*project.TrackObject),
		timeline:     project.NewTimeline(),
	}
}

// claim reserves id for an element of the given name.
func (c *loadContext) claim(id, element string) error {
	if id == "" {
		return xerrors.New(xerrors.ErrCodeStructural, "<%s> without id", element)
	}
	if prev, ok := c.ids[id]; ok {
		return xerrors.New(xerrors.ErrCodeStructural, "duplicate id %q on <%s> (first used by <%s>)", id, element, prev)
	}
	c.ids[id] = element
	return nil
}

func (c *loadContext) load(doc *Document) error {
	sources, tracks, timelineObjects, err := doc.sections()
	if err != nil {
		return err
	}
	if err := c.loadSources(sources); err != nil {
		return err
	}
	if err := c.loadTracks(tracks); err != nil {
		return err
	}
	if err := c.loadTimelineObjects(timelineObjects); err != nil {
		return err
	}
	if err := c.timeline.Validate(); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeDanglingReference, err, "timeline")
	}
	return nil
}

// commit moves everything that was read into p.
func (c *loadContext) commit(p *project.Project) error {
	for _, f := range c.sources {
		p.Sources.Add(f)
	}
	for _, t := range c.timeline.Tracks() {
		if err := p.Timeline.AddTrack(t); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeInternal, err, "commit track")
		}
	}
	for _, o := range c.timeline.TimelineObjects() {
		p.Timeline.AddTimelineObject(o)
	}
	return nil
}

func (c *loadContext) loadStream(el *StreamElement) (*project.Stream, error) {
	if err := c.claim(el.ID, "stream"); err != nil {
		return nil, err
	}
	parsed, err := caps.Parse(el.Caps)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeMalformedCaps, err, "stream %s", el.ID)
	}
	s, err := c.registry.NewStream(el.Type, parsed)
	if err != nil {
		return nil, registryError(err, "stream "+el.ID)
	}
	c.streams[el.ID] = s
	return s, nil
}

func (c *loadContext) loadSources(el *SourcesElement) error {
	for i := range el.Sources {
		f, err := c.loadSource(&el.Sources[i])
		if err != nil {
			return err
		}
		c.sources = append(c.sources, f)
	}
	c.logger.Debug("loaded sources", "count", len(c.sources))
	return nil
}

func (c *loadContext) loadSource(el *SourceElement) (project.Factory, error) {
	c.logger.Debug("loading source", "id", el.ID, "type", el.Type)
	if err := c.claim(el.ID, "source"); err != nil {
		return nil, err
	}

	attrs := make(map[string]string, len(el.Attrs)+1)
	for _, a := range el.Attrs {
		attrs[a.Name.Local] = a.Value
	}
	if el.Filename != "" {
		attrs[project.AttrFilename] = el.Filename
	}
	f, err := c.registry.NewFactory(el.Type, attrs)
	if err != nil {
		return nil, registryError(err, "source "+el.ID)
	}
	// The sources section holds source factories only.
	if !f.IsSource() {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "source %s: %s is not a source factory", el.ID, el.Type)
	}

	if el.InputStreams != nil {
		for i := range el.InputStreams.Streams {
			s, err := c.loadStream(&el.InputStreams.Streams[i])
			if err != nil {
				return nil, err
			}
			f.AddInputStream(s)
		}
	}
	if el.OutputStreams == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "source %s has no <output-streams>", el.ID)
	}
	for i := range el.OutputStreams.Streams {
		s, err := c.loadStream(&el.OutputStreams.Streams[i])
		if err != nil {
			return nil, err
		}
		f.AddOutputStream(s)
	}

	c.factories[el.ID] = f
	return f, nil
}

func (c *loadContext) factoryRef(ref *RefElement, owner string) (project.Factory, error) {
	if ref == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "%s has no <factory-ref>", owner)
	}
	f, ok := c.factories[ref.ID]
	if !ok {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "%s: factory-ref %q does not name a loaded source", owner, ref.ID)
	}
	return f, nil
}

func (c *loadContext) streamRef(ref *RefElement, owner string) (*project.Stream, error) {
	if ref == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "%s has no <stream-ref>", owner)
	}
	s, ok := c.streams[ref.ID]
	if !ok {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "%s: stream-ref %q does not name a loaded stream", owner, ref.ID)
	}
	return s, nil
}

func (c *loadContext) loadTracks(el *TracksElement) error {
	for i := range el.Tracks {
		t, err := c.loadTrack(&el.Tracks[i], i)
		if err != nil {
			return err
		}
		if err := c.timeline.AddTrack(t); err != nil {
			return xerrors.Wrap(xerrors.ErrCodeInternal, err, "track %d", i)
		}
	}
	c.logger.Debug("loaded tracks", "count", len(el.Tracks))
	return nil
}

func (c *loadContext) loadTrack(el *TrackElement, index int) (*project.Track, error) {
	if el.Stream == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "track %d has no <stream>", index)
	}
	s, err := c.loadStream(el.Stream)
	if err != nil {
		return nil, err
	}
	t := project.NewTrack(s)

	if el.TrackObjects == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "track %d has no <track-objects>", index)
	}
	for i := range el.TrackObjects.TrackObjects {
		oe := &el.TrackObjects.TrackObjects[i]
		o, err := c.loadTrackObject(oe)
		if err != nil {
			return nil, err
		}
		if err := t.AddTrackObject(o); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStructural, err, "track-object %s on track %d", oe.ID, index)
		}
		c.trackObjects[oe.ID] = o
	}
	return t, nil
}

func (c *loadContext) loadTrackObject(el *TrackObjectElement) (*project.TrackObject, error) {
	c.logger.Debug("loading track object", "id", el.ID, "type", el.Type)
	if err := c.claim(el.ID, "track-object"); err != nil {
		return nil, err
	}
	owner := "track-object " + el.ID

	f, err := c.factoryRef(el.FactoryRef, owner)
	if err != nil {
		return nil, err
	}
	s, err := c.streamRef(el.StreamRef, owner)
	if err != nil {
		return nil, err
	}
	o, err := c.registry.NewTrackObject(el.Type, f, s)
	if err != nil {
		return nil, registryError(err, owner)
	}

	for _, a := range el.Attrs {
		v, err := gstvalue.Parse(a.Value)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeMalformedValue, err, "%s attribute %s", owner, a.Name.Local)
		}
		if err := o.SetProperty(a.Name.Local, v); err != nil {
			code := xerrors.ErrCodeMalformedValue
			if errors.Is(err, project.ErrUnknownProperty) {
				code = xerrors.ErrCodeUnknownProperty
			}
			return nil, xerrors.Wrap(code, err, "%s", owner)
		}
	}
	return o, nil
}

func (c *loadContext) loadTimelineObjects(el *TimelineObjectsElement) error {
	for i := range el.TimelineObjects {
		o, err := c.loadTimelineObject(&el.TimelineObjects[i], i)
		if err != nil {
			return err
		}
		c.timeline.AddTimelineObject(o)
	}
	c.logger.Debug("loaded timeline objects", "count", len(el.TimelineObjects))
	return nil
}

func (c *loadContext) loadTimelineObject(el *TimelineObjectElement, index int) (*project.TimelineObject, error) {
	owner := "timeline-object " + strconv.Itoa(index)
	f, err := c.factoryRef(el.FactoryRef, owner)
	if err != nil {
		return nil, err
	}
	o := project.NewTimelineObject(f)

	if el.TrackObjectRefs == nil {
		return nil, xerrors.New(xerrors.ErrCodeStructural, "%s has no <track-object-refs>", owner)
	}
	for _, ref := range el.TrackObjectRefs.Refs {
		to, ok := c.trackObjects[ref.ID]
		if !ok {
			return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "%s: track-object-ref %q does not name a loaded track object", owner, ref.ID)
		}
		if err := o.AddTrackObject(to); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrCodeStructural, err, "%s: track-object-ref %q", owner, ref.ID)
		}
	}
	return o, nil
}

// registryError maps a registry failure to a document error code.
func registryError(err error, what string) error {
	switch {
	case errors.Is(err, project.ErrUnknownType):
		return xerrors.Wrap(xerrors.ErrCodeUnknownType, err, "%s", what)
	case errors.Is(err, project.ErrMissingAttribute):
		return xerrors.Wrap(xerrors.ErrCodeStructural, err, "%s", what)
	default:
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "%s", what)
	}
}
