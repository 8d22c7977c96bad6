package etree

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/matzehuels/xptv/pkg/dag"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
)

// Rows of the reference graph, one per element kind.
const (
	RowSource = iota
	RowStream
	RowTrack
	RowTrackObject
	RowTimelineObject
)

// ReferenceGraph builds the graph of elements and references of doc,
// reading in document order. Tracks and timeline objects have no id in the
// document and are keyed "track:N" and "timeline-object:N".
//
// Duplicate ids fail with STRUCTURAL. A reference to an id that is not
// defined earlier in the document fails with DANGLING_REFERENCE.
func ReferenceGraph(doc *Document) (*dag.DAG, error) {
	sources, tracks, timelineObjects, err := doc.sections()
	if err != nil {
		return nil, err
	}

	b := &graphBuilder{g: dag.New(dag.Metadata{
		"formatter": doc.Formatter,
		"version":   doc.Version,
	})}

	for _, src := range sources.Sources {
		meta := dag.Metadata{"type": src.Type}
		label := shortType(src.Type)
		if src.Filename != "" {
			meta["filename"] = src.Filename
			label = path.Base(src.Filename)
		}
		if err := b.node(dag.Node{ID: src.ID, Kind: dag.NodeKindSource, Row: RowSource, Label: label, Meta: meta}); err != nil {
			return nil, err
		}
		if src.InputStreams != nil {
			if err := b.streams(src.InputStreams.Streams, src.ID, "input-streams"); err != nil {
				return nil, err
			}
		}
		if src.OutputStreams != nil {
			if err := b.streams(src.OutputStreams.Streams, src.ID, "output-streams"); err != nil {
				return nil, err
			}
		}
	}

	for i, t := range tracks.Tracks {
		key := fmt.Sprintf("track:%d", i)
		if err := b.node(dag.Node{ID: key, Kind: dag.NodeKindTrack, Row: RowTrack, Label: fmt.Sprintf("track %d", i)}); err != nil {
			return nil, err
		}
		if t.Stream != nil {
			if err := b.streams([]StreamElement{*t.Stream}, key, "stream"); err != nil {
				return nil, err
			}
		}
		if t.TrackObjects == nil {
			continue
		}
		for _, o := range t.TrackObjects.TrackObjects {
			meta := dag.Metadata{"type": o.Type}
			for _, a := range o.Attrs {
				meta[a.Name.Local] = a.Value
			}
			if err := b.node(dag.Node{ID: o.ID, Kind: dag.NodeKindTrackObject, Row: RowTrackObject, Label: "object " + o.ID, Meta: meta}); err != nil {
				return nil, err
			}
			if err := b.edge(o.ID, key, "track-objects"); err != nil {
				return nil, err
			}
			if err := b.ref(o.ID, o.FactoryRef, "factory-ref"); err != nil {
				return nil, err
			}
			if err := b.ref(o.ID, o.StreamRef, "stream-ref"); err != nil {
				return nil, err
			}
		}
	}

	for i, o := range timelineObjects.TimelineObjects {
		key := fmt.Sprintf("timeline-object:%d", i)
		if err := b.node(dag.Node{ID: key, Kind: dag.NodeKindTimelineObject, Row: RowTimelineObject, Label: fmt.Sprintf("clip %d", i)}); err != nil {
			return nil, err
		}
		if err := b.ref(key, o.FactoryRef, "factory-ref"); err != nil {
			return nil, err
		}
		if o.TrackObjectRefs == nil {
			continue
		}
		for j := range o.TrackObjectRefs.Refs {
			if err := b.ref(key, &o.TrackObjectRefs.Refs[j], "track-object-ref"); err != nil {
				return nil, err
			}
		}
	}

	return b.g, nil
}

type graphBuilder struct {
	g *dag.DAG
}

func (b *graphBuilder) node(n dag.Node) error {
	if err := b.g.AddNode(n); err != nil {
		if errors.Is(err, dag.ErrDuplicateNodeID) {
			return xerrors.Wrap(xerrors.ErrCodeStructural, err, "id %q on <%s>", n.ID, n.Kind)
		}
		return xerrors.Wrap(xerrors.ErrCodeStructural, err, "<%s> without id", n.Kind)
	}
	return nil
}

func (b *graphBuilder) streams(streams []StreamElement, owner, relation string) error {
	for _, s := range streams {
		label := shortType(s.Type)
		if mt, _, _ := strings.Cut(s.Caps, ","); mt != "" {
			label = strings.TrimSpace(mt)
		}
		meta := dag.Metadata{"type": s.Type, "caps": s.Caps}
		if err := b.node(dag.Node{ID: s.ID, Kind: dag.NodeKindStream, Row: RowStream, Label: label, Meta: meta}); err != nil {
			return err
		}
		if err := b.edge(s.ID, owner, relation); err != nil {
			return err
		}
	}
	return nil
}

func (b *graphBuilder) edge(from, to, label string) error {
	if err := b.g.AddEdge(dag.Edge{From: from, To: to, Label: label}); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "%s -> %s", from, to)
	}
	return nil
}

func (b *graphBuilder) ref(from string, ref *RefElement, label string) error {
	if ref == nil {
		return xerrors.New(xerrors.ErrCodeStructural, "%s has no <%s>", from, label)
	}
	if err := b.g.AddEdge(dag.Edge{From: from, To: ref.ID, Label: label}); err != nil {
		if errors.Is(err, dag.ErrUnknownTargetNode) {
			return xerrors.Wrap(xerrors.ErrCodeDanglingReference, err, "%s: %s %q is not defined before use", from, label, ref.ID)
		}
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "%s -> %s", from, ref.ID)
	}
	return nil
}

// shortType returns the last dotted component of a qualified type name.
func shortType(typeName string) string {
	if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}
