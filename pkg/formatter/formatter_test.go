package formatter

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/xptv/pkg/caps"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/project"
)

type suffixFormatter struct {
	name   string
	suffix string
}

func (f suffixFormatter) Name() string              { return f.name }
func (f suffixFormatter) CanHandle(uri string) bool { return strings.HasSuffix(uri, f.suffix) }

func (suffixFormatter) Save(context.Context, *project.Project, string) error { return nil }
func (suffixFormatter) Load(context.Context, string, *project.Project) error { return nil }

func TestRegistry(t *testing.T) {
	saved := Formatters()
	t.Cleanup(func() {
		mu.Lock()
		formatters = saved
		mu.Unlock()
	})

	Register(suffixFormatter{"a", ".aaa"})
	Register(suffixFormatter{"b", ".bbb"})
	Register(suffixFormatter{"a", ".ccc"})

	f, err := For("/tmp/x.bbb")
	if err != nil || f.Name() != "b" {
		t.Fatalf("For(.bbb) = %v, %v", f, err)
	}
	if f, err := For("/tmp/x.ccc"); err != nil || f.Name() != "a" {
		t.Errorf("re-registered formatter not used: %v, %v", f, err)
	}
	if _, err := For("/tmp/x.aaa"); !errors.Is(err, ErrNoFormatter) {
		t.Errorf("replaced suffix still handled: %v", err)
	}

	names := []string{}
	for _, f := range Formatters() {
		names = append(names, f.Name())
	}
	if got := strings.Join(names, ","); !strings.HasSuffix(got, "a,b") {
		t.Errorf("Formatters() order = %s", got)
	}
}

func TestPathFromURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"file:///tmp/a.xptv", "/tmp/a.xptv", false},
		{"file:///tmp/My%20Project.xptv", "/tmp/My Project.xptv", false},
		{"file://localhost/srv/p.xptv", "/srv/p.xptv", false},
		{"/plain/path.xptv", "/plain/path.xptv", false},
		{"relative.xptv", "relative.xptv", false},
		{"http://example.com/p.xptv", "", true},
		{"file://", "", true},
		{"file://otherhost/p.xptv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := PathFromURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PathFromURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if err != nil {
				if !xerrors.Is(err, xerrors.ErrCodeInvalidPath) {
					t.Errorf("error code = %s, want INVALID_PATH", xerrors.GetCode(err))
				}
				return
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("PathFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestURIFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my project.xptv")

	uri, err := URIFromPath(path)
	if err != nil {
		t.Fatalf("URIFromPath: %v", err)
	}
	if !strings.HasPrefix(uri, "file://") || !strings.Contains(uri, "my%20project.xptv") {
		t.Errorf("URIFromPath() = %q", uri)
	}
	back, err := PathFromURI(uri)
	if err != nil {
		t.Fatalf("PathFromURI: %v", err)
	}
	if back != path {
		t.Errorf("round trip = %q, want %q", back, path)
	}
}

func TestStats(t *testing.T) {
	p := project.New("demo")
	f := project.NewFileSourceFactory("file:///tmp/a.ogg")
	p.Sources.Add(f)

	track := project.NewTrack(project.NewAudioStream(caps.Simple("audio/x-raw-int")))
	_ = p.Timeline.AddTrack(track)
	obj := project.NewTrackObject(f, project.NewAudioStream(caps.Simple("audio/x-raw-int")))
	_ = track.AddTrackObject(obj)
	clip := project.NewTimelineObject(f)
	_ = clip.AddTrackObject(obj)
	p.Timeline.AddTimelineObject(clip)

	s := Stats(p)
	if s.Sources != 1 || s.Tracks != 1 || s.TrackObjects != 1 || s.TimelineObjects != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}
