package project

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	p := New("demo")
	p.URI = "file:///tmp/demo.xptv"

	f := NewFileSourceFactory("file:///tmp/a.ogg")
	out := NewAudioStream(audioCaps())
	f.AddOutputStream(out)
	p.Sources.Add(f)
	p.Sources.Add(NewTestSourceFactory(StreamVideo))

	track := NewTrack(NewAudioStream(audioCaps()))
	obj := NewTrackObject(f, out)
	obj.Start, obj.Duration = 500, 1500
	if err := track.AddTrackObject(obj); err != nil {
		t.Fatal(err)
	}
	if err := p.Timeline.AddTrack(track); err != nil {
		t.Fatal(err)
	}
	clip := NewTimelineObject(f)
	if err := clip.AddTrackObject(obj); err != nil {
		t.Fatal(err)
	}
	p.Timeline.AddTimelineObject(clip)

	s := Summarize(p)
	if s.Name != "demo" || s.URI != p.URI {
		t.Errorf("name/uri = %q/%q", s.Name, s.URI)
	}
	if s.Duration != 2000 {
		t.Errorf("Duration = %d, want 2000", s.Duration)
	}
	if len(s.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(s.Sources))
	}
	if s.Sources[0].Location != "file:///tmp/a.ogg" || s.Sources[0].Outputs[0] != "audio" {
		t.Errorf("file source = %+v", s.Sources[0])
	}
	if s.Sources[1].Type != TypeVideoTestSourceFactory || s.Sources[1].Location != "" {
		t.Errorf("test source = %+v", s.Sources[1])
	}
	if len(s.Tracks) != 1 || s.Tracks[0].Objects != 1 || s.Tracks[0].Kind != "audio" {
		t.Errorf("tracks = %+v", s.Tracks)
	}
	if s.TimelineObjects != 1 {
		t.Errorf("TimelineObjects = %d, want 1", s.TimelineObjects)
	}
}

func TestSummarizeEmptyJSON(t *testing.T) {
	data, err := json.Marshal(Summarize(New("empty")))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"sources":[]`, `"tracks":[]`, `"timeline_objects":0`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s missing %s", got, want)
		}
	}
	if strings.Contains(got, `"uri"`) {
		t.Errorf("empty uri should be omitted: %s", got)
	}
}
