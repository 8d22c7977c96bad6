package project

// Summary is a serializable overview of a project.
type Summary struct {
	Name            string          `json:"name"`
	URI             string          `json:"uri,omitempty"`
	Duration        int64           `json:"duration"`
	Sources         []SourceSummary `json:"sources"`
	Tracks          []TrackSummary  `json:"tracks"`
	TimelineObjects int             `json:"timeline_objects"`
}

// SourceSummary describes one factory of the source list.
type SourceSummary struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Location string   `json:"location,omitempty"`
	Outputs  []string `json:"outputs"`
}

// TrackSummary describes one track. Objects excludes the default object.
type TrackSummary struct {
	Kind     string `json:"kind"`
	Caps     string `json:"caps"`
	Objects  int    `json:"objects"`
	Duration int64  `json:"duration"`
}

// Summarize returns the overview of p.
func Summarize(p *Project) Summary {
	s := Summary{
		Name:            p.Name,
		URI:             p.URI,
		Duration:        p.Timeline.Duration(),
		Sources:         []SourceSummary{},
		Tracks:          []TrackSummary{},
		TimelineObjects: len(p.Timeline.TimelineObjects()),
	}
	for _, f := range p.Sources.All() {
		src := SourceSummary{Name: f.Name(), Type: f.TypeName(), Outputs: []string{}}
		if fb, ok := f.(FileBacked); ok {
			src.Location = fb.Location()
		}
		for _, st := range f.OutputStreams() {
			src.Outputs = append(src.Outputs, st.Kind.String())
		}
		s.Sources = append(s.Sources, src)
	}
	for _, t := range p.Timeline.Tracks() {
		s.Tracks = append(s.Tracks, TrackSummary{
			Kind:     t.Stream.Kind.String(),
			Caps:     t.Stream.Caps.String(),
			Objects:  len(t.SourceObjects()),
			Duration: t.Duration(),
		})
	}
	return s
}
