package project

import (
	"errors"
	"testing"

	"github.com/matzehuels/xptv/pkg/caps"
	"github.com/matzehuels/xptv/pkg/gstvalue"
)

func audioCaps() caps.Caps { return caps.Simple("audio/x-raw-int") }
func videoCaps() caps.Caps { return caps.Simple("video/x-raw-yuv") }

func TestNewTrackCreatesDefault(t *testing.T) {
	track := NewTrack(NewAudioStream(audioCaps()))

	def := track.Default()
	if def == nil {
		t.Fatal("Default() returned nil")
	}
	if !def.IsDefault() {
		t.Error("default object should report IsDefault")
	}
	if def.Priority != DefaultPriority {
		t.Errorf("default priority = %d, want %d", def.Priority, DefaultPriority)
	}
	if def.Factory != nil {
		t.Error("default object should have no factory")
	}
	if got := len(track.Objects()); got != 1 {
		t.Errorf("Objects() len = %d, want 1", got)
	}
	if got := len(track.SourceObjects()); got != 0 {
		t.Errorf("SourceObjects() len = %d, want 0", got)
	}
	if !track.Contains(def) {
		t.Error("track should contain its default object")
	}
}

func TestTrackAddTrackObject(t *testing.T) {
	factory := NewFileSourceFactory("file:///tmp/a.ogg")
	audio := NewAudioStream(audioCaps())
	factory.AddOutputStream(audio)
	track := NewTrack(NewAudioStream(audioCaps()))

	obj := NewTrackObject(factory, audio)
	if err := track.AddTrackObject(obj); err != nil {
		t.Fatalf("AddTrackObject: %v", err)
	}
	if obj.Track() != track {
		t.Error("Track() should return the owning track")
	}
	if err := track.AddTrackObject(obj); !errors.Is(err, ErrAlreadyInTrack) {
		t.Errorf("second add error = %v, want ErrAlreadyInTrack", err)
	}

	video := NewTrackObject(factory, NewVideoStream(videoCaps()))
	if err := track.AddTrackObject(video); !errors.Is(err, ErrStreamMismatch) {
		t.Errorf("mismatched add error = %v, want ErrStreamMismatch", err)
	}

	objs := track.SourceObjects()
	if len(objs) != 1 || objs[0] != obj {
		t.Errorf("SourceObjects() = %v, want [obj]", objs)
	}
}

func TestTrackRemoveTrackObject(t *testing.T) {
	track := NewTrack(NewVideoStream(videoCaps()))
	obj := NewTrackObject(NewSourceFactory("s"), NewVideoStream(videoCaps()))
	_ = track.AddTrackObject(obj)

	if err := track.RemoveTrackObject(track.Default()); !errors.Is(err, ErrDefaultTrackObject) {
		t.Errorf("removing default error = %v, want ErrDefaultTrackObject", err)
	}
	if err := track.RemoveTrackObject(obj); err != nil {
		t.Fatalf("RemoveTrackObject: %v", err)
	}
	if obj.Track() != nil {
		t.Error("removed object should have no track")
	}
	if err := track.RemoveTrackObject(obj); !errors.Is(err, ErrNotInTrack) {
		t.Errorf("second remove error = %v, want ErrNotInTrack", err)
	}
}

func TestTrackDuration(t *testing.T) {
	track := NewTrack(NewAudioStream(audioCaps()))
	f := NewSourceFactory("s")
	for _, start := range []int64{0, 3 * Second, Second} {
		obj := NewTrackObject(f, NewAudioStream(audioCaps()))
		obj.Start = start
		obj.Duration = Second
		_ = track.AddTrackObject(obj)
	}
	if got := track.Duration(); got != 4*Second {
		t.Errorf("Duration() = %d, want %d", got, 4*Second)
	}
}

func TestSetProperty(t *testing.T) {
	obj := NewTrackObject(NewSourceFactory("s"), NewAudioStream(audioCaps()))

	tests := []struct {
		name    string
		prop    string
		value   gstvalue.Value
		wantErr error
	}{
		{"start gint64", PropStart, gstvalue.Int64(5), nil},
		{"duration int", PropDuration, gstvalue.Int(7), nil},
		{"in_point guint64", PropInPoint, gstvalue.Uint64(9), nil},
		{"media_duration", PropMediaDuration, gstvalue.Int64(11), nil},
		{"priority", PropPriority, gstvalue.Int(2), nil},
		{"priority from gint64", PropPriority, gstvalue.Int64(3), nil},
		{"unknown", "volume", gstvalue.Double(1), ErrUnknownProperty},
		{"string start", PropStart, gstvalue.String("soon"), ErrPropertyType},
		{"priority overflow", PropPriority, gstvalue.Int64(1 << 40), ErrPropertyType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := obj.SetProperty(tt.prop, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetProperty(%s) error = %v, want %v", tt.prop, err, tt.wantErr)
			}
		})
	}

	if obj.Start != 5 || obj.Duration != 7 || obj.InPoint != 9 || obj.MediaDuration != 11 || obj.Priority != 3 {
		t.Errorf("unexpected values: %+v", obj)
	}
}

func TestPropertiesOrder(t *testing.T) {
	obj := NewTrackObject(NewSourceFactory("s"), NewAudioStream(audioCaps()))
	obj.Start, obj.Duration, obj.InPoint, obj.MediaDuration, obj.Priority = 1, 2, 3, 4, 5

	props := obj.Properties()
	want := []string{"(gint64)1", "(gint64)2", "(gint64)3", "(gint64)4", "(int)5"}
	names := []string{PropStart, PropDuration, PropInPoint, PropMediaDuration, PropPriority}
	if len(props) != len(want) {
		t.Fatalf("got %d properties, want %d", len(props), len(want))
	}
	for i, p := range props {
		if p.Name != names[i] || p.Value.String() != want[i] {
			t.Errorf("property %d = %s=%s, want %s=%s", i, p.Name, p.Value, names[i], want[i])
		}
	}
}

func TestTimelineObjectAttach(t *testing.T) {
	f := NewSourceFactory("s")
	obj := NewTrackObject(f, NewAudioStream(audioCaps()))
	a := NewTimelineObject(f)
	b := NewTimelineObject(f)

	if err := a.AddTrackObject(obj); err != nil {
		t.Fatalf("AddTrackObject: %v", err)
	}
	if err := b.AddTrackObject(obj); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("second attach error = %v, want ErrAlreadyAttached", err)
	}
	if obj.TimelineObject() != a {
		t.Error("TimelineObject() should return the first owner")
	}
}

func TestTimelineValidate(t *testing.T) {
	f := NewFileSourceFactory("file:///tmp/a.ogg")
	tl := NewTimeline()
	track := NewTrack(NewAudioStream(audioCaps()))
	if err := tl.AddTrack(track); err != nil {
		t.Fatal(err)
	}
	if err := tl.AddTrack(track); !errors.Is(err, ErrDuplicateTrack) {
		t.Errorf("duplicate AddTrack error = %v", err)
	}

	placed := NewTrackObject(f, NewAudioStream(audioCaps()))
	_ = track.AddTrackObject(placed)
	clip := NewTimelineObject(f)
	_ = clip.AddTrackObject(placed)
	tl.AddTimelineObject(clip)

	if err := tl.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	orphan := NewTrackObject(f, NewAudioStream(audioCaps()))
	other := NewTimelineObject(f)
	_ = other.AddTrackObject(orphan)
	tl.AddTimelineObject(other)

	if err := tl.Validate(); !errors.Is(err, ErrOrphanTrackObject) {
		t.Errorf("Validate error = %v, want ErrOrphanTrackObject", err)
	}
}

func TestSourceList(t *testing.T) {
	l := NewSourceList()
	a := NewFileSourceFactory("file:///tmp/a.ogg")
	b := NewSourceFactory("b")

	l.Add(a)
	l.Add(b)
	l.Add(a)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if all := l.All(); all[0] != a || all[1] != b {
		t.Errorf("All() order = %v", all)
	}
	if got, ok := l.Get(b.Handle()); !ok || got != b {
		t.Error("Get(b) failed")
	}
	if !l.Remove(a.Handle()) {
		t.Error("Remove(a) = false")
	}
	if l.Remove(a.Handle()) {
		t.Error("second Remove(a) = true")
	}
	if l.Len() != 1 || l.All()[0] != b {
		t.Errorf("after remove: %v", l.All())
	}
}

func TestProjectIsEmpty(t *testing.T) {
	p := New("demo")
	if !p.IsEmpty() {
		t.Error("new project should be empty")
	}
	p.Sources.Add(NewSourceFactory("s"))
	if p.IsEmpty() {
		t.Error("project with a source should not be empty")
	}
}

func TestFileSourceFactory(t *testing.T) {
	f := NewFileSourceFactory("file:///media/clips/intro.ogg")
	if f.Name() != "intro.ogg" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.Location() != "file:///media/clips/intro.ogg" {
		t.Errorf("Location() = %q", f.Location())
	}
	if !f.IsSource() || f.TypeName() != TypeFileSourceFactory {
		t.Errorf("IsSource=%v TypeName=%q", f.IsSource(), f.TypeName())
	}
	if NewEffectFactory("agingtv").IsSource() {
		t.Error("effect factory should not be a source")
	}
}

func TestHandlesAreUnique(t *testing.T) {
	seen := map[Handle]bool{}
	for i := 0; i < 100; i++ {
		h := NewAudioStream(audioCaps()).Handle()
		if h.IsZero() {
			t.Fatal("zero handle")
		}
		if seen[h] {
			t.Fatalf("duplicate handle %s", h)
		}
		seen[h] = true
	}
}
