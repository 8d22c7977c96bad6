package etree

import (
	"encoding/xml"
	"errors"
	"io"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
)

// Document is the element tree of a project file.
//
// Sections are pointers so that a missing section can be told apart from
// an empty one when reading.
type Document struct {
	XMLName   xml.Name          `xml:"pitivi"`
	Formatter string            `xml:"formatter,attr"`
	Version   string            `xml:"version,attr"`
	Factories *FactoriesElement `xml:"factories"`
	Timeline  *TimelineElement  `xml:"timeline"`
}

// FactoriesElement is the <factories> section.
type FactoriesElement struct {
	Sources *SourcesElement `xml:"sources"`
}

// SourcesElement lists the source factories in save order.
type SourcesElement struct {
	Sources []SourceElement `xml:"source"`
}

// SourceElement is a source factory with its streams. Attributes other
// than id, type and filename are kept in Attrs and handed to the factory
// constructor.
type SourceElement struct {
	ID            string          `xml:"id,attr"`
	Type          string          `xml:"type,attr"`
	Filename      string          `xml:"filename,attr,omitempty"`
	Attrs         []xml.Attr      `xml:",any,attr"`
	InputStreams  *StreamsElement `xml:"input-streams"`
	OutputStreams *StreamsElement `xml:"output-streams"`
}

// StreamsElement is an <input-streams> or <output-streams> list.
type StreamsElement struct {
	Streams []StreamElement `xml:"stream"`
}

// StreamElement is a stream definition. Caps holds the capability string.
type StreamElement struct {
	ID   string `xml:"id,attr"`
	Type string `xml:"type,attr"`
	Caps string `xml:"caps,attr"`
}

// TimelineElement is the <timeline> section.
type TimelineElement struct {
	Tracks          *TracksElement          `xml:"tracks"`
	TimelineObjects *TimelineObjectsElement `xml:"timeline-objects"`
}

// TracksElement lists the timeline's tracks in order.
type TracksElement struct {
	Tracks []TrackElement `xml:"track"`
}

// TrackElement embeds its stream rather than referencing it.
type TrackElement struct {
	Stream       *StreamElement       `xml:"stream"`
	TrackObjects *TrackObjectsElement `xml:"track-objects"`
}

// TrackObjectsElement lists a track's objects, without the default object.
type TrackObjectsElement struct {
	TrackObjects []TrackObjectElement `xml:"track-object"`
}

// TrackObjectElement carries its scalar properties as annotated attribute
// values such as start="(gint64)0".
type TrackObjectElement struct {
	ID         string      `xml:"id,attr"`
	Type       string      `xml:"type,attr"`
	Attrs      []xml.Attr  `xml:",any,attr"`
	FactoryRef *RefElement `xml:"factory-ref"`
	StreamRef  *RefElement `xml:"stream-ref"`
}

// TimelineObjectsElement lists the timeline objects in order.
type TimelineObjectsElement struct {
	TimelineObjects []TimelineObjectElement `xml:"timeline-object"`
}

// TimelineObjectElement groups track objects that belong to one clip.
type TimelineObjectElement struct {
	FactoryRef      *RefElement             `xml:"factory-ref"`
	TrackObjectRefs *TrackObjectRefsElement `xml:"track-object-refs"`
}

// TrackObjectRefsElement lists the track objects of a timeline object.
type TrackObjectRefsElement struct {
	Refs []RefElement `xml:"track-object-ref"`
}

// RefElement points at a previously defined element by id.
type RefElement struct {
	ID string `xml:"id,attr"`
}

// Parse reads a document. Syntax errors and a root element other than
// <pitivi> are reported as STRUCTURAL errors.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		var syntaxErr *xml.SyntaxError
		var unmarshalErr xml.UnmarshalError
		switch {
		case err == io.EOF:
			return nil, xerrors.New(xerrors.ErrCodeStructural, "empty document")
		case errors.As(err, &syntaxErr), errors.As(err, &unmarshalErr):
			return nil, xerrors.Wrap(xerrors.ErrCodeStructural, err, "parse document")
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeInternal, err, "read document")
	}
	return &doc, nil
}

// WriteTo writes the document with two-space indentation and no XML
// declaration.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, xerrors.Wrap(xerrors.ErrCodeInternal, err, "marshal document")
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// sections returns the required top-level sections of d.
func (d *Document) sections() (*SourcesElement, *TracksElement, *TimelineObjectsElement, error) {
	if d.Factories == nil {
		return nil, nil, nil, xerrors.New(xerrors.ErrCodeStructural, "missing <factories> section")
	}
	if d.Factories.Sources == nil {
		return nil, nil, nil, xerrors.New(xerrors.ErrCodeStructural, "missing <sources> in <factories>")
	}
	if d.Timeline == nil {
		return nil, nil, nil, xerrors.New(xerrors.ErrCodeStructural, "missing <timeline> section")
	}
	if d.Timeline.Tracks == nil {
		return nil, nil, nil, xerrors.New(xerrors.ErrCodeStructural, "missing <tracks> in <timeline>")
	}
	if d.Timeline.TimelineObjects == nil {
		return nil, nil, nil, xerrors.New(xerrors.ErrCodeStructural, "missing <timeline-objects> in <timeline>")
	}
	return d.Factories.Sources, d.Timeline.Tracks, d.Timeline.TimelineObjects, nil
}
