package etree

import (
	"encoding/xml"
	"strconv"

	"github.com/charmbracelet/log"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/project"
)

// saveContext assigns document ids during one save. Streams, factories and
// track objects draw from the same counter.
type saveContext struct {
	logger *log.Logger

	nextID       int
	streams      map[project.Handle]string
	factories    map[project.Handle]string
	trackObjects map[project.Handle]string
}

func newSaveContext(logger *log.Logger) *saveContext {
	return &saveContext{
		logger:       logger,
		streams:      make(map[project.Handle]string),
		factories:    make(map[project.Handle]string),
		trackObjects: make(map[project.Handle]string),
	}
}

func (c *saveContext) newID() string {
	id := strconv.Itoa(c.nextID)
	c.nextID++
	return id
}

func (c *saveContext) serialize(p *project.Project) (*Document, error) {
	sources, err := c.saveSources(p.Sources.All())
	if err != nil {
		return nil, err
	}
	timeline, err := c.saveTimeline(p.Timeline)
	if err != nil {
		return nil, err
	}
	return &Document{
		Formatter: FormatName,
		Version:   Version,
		Factories: &FactoriesElement{Sources: sources},
		Timeline:  timeline,
	}, nil
}

// saveStream emits a stream and records its id. A stream emitted twice is
// referenced through its latest id.
func (c *saveContext) saveStream(s *project.Stream) (StreamElement, error) {
	typeName := s.TypeName()
	if typeName == "" {
		return StreamElement{}, xerrors.New(xerrors.ErrCodeUnknownType, "stream of kind %s has no type name", s.Kind)
	}
	el := StreamElement{
		ID:   c.newID(),
		Type: typeName,
		Caps: s.Caps.String(),
	}
	c.streams[s.Handle()] = el.ID
	return el, nil
}

func (c *saveContext) saveStreams(streams []*project.Stream) (*StreamsElement, error) {
	el := &StreamsElement{}
	for _, s := range streams {
		se, err := c.saveStream(s)
		if err != nil {
			return nil, err
		}
		el.Streams = append(el.Streams, se)
	}
	return el, nil
}

func (c *saveContext) saveSources(factories []project.Factory) (*SourcesElement, error) {
	el := &SourcesElement{}
	for _, f := range factories {
		if !f.IsSource() {
			c.logger.Debug("skipping non-source factory", "type", f.TypeName(), "name", f.Name())
			continue
		}
		src, err := c.saveSource(f)
		if err != nil {
			return nil, err
		}
		el.Sources = append(el.Sources, src)
	}
	c.logger.Debug("saved sources", "count", len(el.Sources))
	return el, nil
}

func (c *saveContext) saveSource(f project.Factory) (SourceElement, error) {
	el := SourceElement{
		ID:   c.newID(),
		Type: f.TypeName(),
	}
	var err error
	if el.InputStreams, err = c.saveStreams(f.InputStreams()); err != nil {
		return SourceElement{}, err
	}
	if el.OutputStreams, err = c.saveStreams(f.OutputStreams()); err != nil {
		return SourceElement{}, err
	}
	if fb, ok := f.(project.FileBacked); ok {
		el.Filename = fb.Location()
	}
	c.factories[f.Handle()] = el.ID
	return el, nil
}

func (c *saveContext) factoryRef(f project.Factory) (*RefElement, error) {
	if f == nil {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "reference to a nil factory")
	}
	id, ok := c.factories[f.Handle()]
	if !ok {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "factory %q (%s) was not saved as a source", f.Name(), f.TypeName())
	}
	return &RefElement{ID: id}, nil
}

func (c *saveContext) streamRef(s *project.Stream) (*RefElement, error) {
	if s == nil {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "reference to a nil stream")
	}
	id, ok := c.streams[s.Handle()]
	if !ok {
		return nil, xerrors.New(xerrors.ErrCodeDanglingReference, "stream %s was not saved", s.Handle())
	}
	return &RefElement{ID: id}, nil
}

func (c *saveContext) trackObjectRef(o *project.TrackObject) (RefElement, error) {
	id, ok := c.trackObjects[o.Handle()]
	if !ok {
		return RefElement{}, xerrors.New(xerrors.ErrCodeDanglingReference, "track object %s is not on a saved track", o.Handle())
	}
	return RefElement{ID: id}, nil
}

func (c *saveContext) saveTrackObject(o *project.TrackObject) (TrackObjectElement, error) {
	el := TrackObjectElement{
		ID:   c.newID(),
		Type: o.TypeName(),
	}
	for _, prop := range o.Properties() {
		el.Attrs = append(el.Attrs, xml.Attr{
			Name:  xml.Name{Local: prop.Name},
			Value: prop.Value.String(),
		})
	}

	var err error
	if el.FactoryRef, err = c.factoryRef(o.Factory); err != nil {
		return TrackObjectElement{}, err
	}
	if el.StreamRef, err = c.streamRef(o.Stream); err != nil {
		return TrackObjectElement{}, err
	}

	c.trackObjects[o.Handle()] = el.ID
	return el, nil
}

func (c *saveContext) saveTrack(t *project.Track) (TrackElement, error) {
	stream, err := c.saveStream(t.Stream)
	if err != nil {
		return TrackElement{}, err
	}
	el := TrackElement{
		Stream:       &stream,
		TrackObjects: &TrackObjectsElement{},
	}
	for _, o := range t.SourceObjects() {
		oe, err := c.saveTrackObject(o)
		if err != nil {
			return TrackElement{}, err
		}
		el.TrackObjects.TrackObjects = append(el.TrackObjects.TrackObjects, oe)
	}
	return el, nil
}

func (c *saveContext) saveTimelineObject(o *project.TimelineObject) (TimelineObjectElement, error) {
	factory, err := c.factoryRef(o.Factory)
	if err != nil {
		return TimelineObjectElement{}, err
	}
	el := TimelineObjectElement{
		FactoryRef:      factory,
		TrackObjectRefs: &TrackObjectRefsElement{},
	}
	for _, to := range o.TrackObjects() {
		ref, err := c.trackObjectRef(to)
		if err != nil {
			return TimelineObjectElement{}, err
		}
		el.TrackObjectRefs.Refs = append(el.TrackObjectRefs.Refs, ref)
	}
	return el, nil
}

func (c *saveContext) saveTimeline(tl *project.Timeline) (*TimelineElement, error) {
	el := &TimelineElement{
		Tracks:          &TracksElement{},
		TimelineObjects: &TimelineObjectsElement{},
	}
	for _, t := range tl.Tracks() {
		te, err := c.saveTrack(t)
		if err != nil {
			return nil, err
		}
		el.Tracks.Tracks = append(el.Tracks.Tracks, te)
	}
	for _, o := range tl.TimelineObjects() {
		oe, err := c.saveTimelineObject(o)
		if err != nil {
			return nil, err
		}
		el.TimelineObjects.TimelineObjects = append(el.TimelineObjects.TimelineObjects, oe)
	}
	c.logger.Debug("saved timeline",
		"tracks", len(el.Tracks.Tracks),
		"timeline_objects", len(el.TimelineObjects.TimelineObjects))
	return el, nil
}
