package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/project"
)

const sampleDoc = `<pitivi formatter="etree" version="0.1">
  <factories>
    <sources>
      <source id="0" type="pitivi.factories.file.FileSourceFactory" filename="file:///tmp/a.ogg">
        <input-streams></input-streams>
        <output-streams>
          <stream id="1" type="pitivi.stream.AudioStream" caps="audio/x-raw-int"></stream>
        </output-streams>
      </source>
    </sources>
  </factories>
  <timeline>
    <tracks>
      <track>
        <stream id="2" type="pitivi.stream.AudioStream" caps="audio/x-raw-int"></stream>
        <track-objects>
          <track-object id="3" type="pitivi.timeline.track.SourceTrackObject" start="(gint64)0" duration="(gint64)1000000000" in_point="(gint64)0" media_duration="(gint64)1000000000" priority="(int)0">
            <factory-ref id="0"></factory-ref>
            <stream-ref id="1"></stream-ref>
          </track-object>
        </track-objects>
      </track>
    </tracks>
    <timeline-objects>
      <timeline-object>
        <factory-ref id="0"></factory-ref>
        <track-object-refs>
          <track-object-ref id="3"></track-object-ref>
        </track-object-refs>
      </timeline-object>
    </timeline-objects>
  </timeline>
</pitivi>
`

// testEnv isolates config and cache lookups from the user's home.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"inspect", "validate", "resave", "graph", "watch", "serve", "types", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestTypes(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "types")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"factories:\n",
		"  " + project.TypeFileSourceFactory + "\n",
		"streams:\n  " + project.TypeAudioStream + "\n",
		"track objects:\n  " + project.TypeSourceTrackObject + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("types output missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "xptv version ") {
		t.Errorf("--version output = %q", out)
	}
}

func TestInspectJSON(t *testing.T) {
	dir := testEnv(t)
	path := writeFile(t, dir, "demo.xptv", sampleDoc)

	out, err := execute(t, "inspect", "--json", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{`"name": "demo"`, `"location": "file:///tmp/a.ogg"`, `"timeline_objects": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %s:\n%s", want, out)
		}
	}
}

func TestInspectErrors(t *testing.T) {
	dir := testEnv(t)

	_, err := execute(t, "inspect", filepath.Join(dir, "missing.xptv"))
	if !xerrors.Is(err, xerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}

	_, err = execute(t, "inspect", writeFile(t, dir, "notes.txt", sampleDoc))
	if !xerrors.Is(err, xerrors.ErrCodeUnsupported) {
		t.Errorf("unknown extension: %v", err)
	}

	bad := strings.Replace(sampleDoc, `<stream-ref id="1">`, `<stream-ref id="5">`, 1)
	_, err = execute(t, "inspect", writeFile(t, dir, "bad.xptv", bad))
	if !xerrors.Is(err, xerrors.ErrCodeDanglingReference) {
		t.Errorf("dangling reference: %v", err)
	}
}

func TestResave(t *testing.T) {
	dir := testEnv(t)
	in := writeFile(t, dir, "in.xptv", sampleDoc)
	out := filepath.Join(dir, "out.xptv")

	if _, err := execute(t, "resave", in, out); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != sampleDoc {
		t.Errorf("resaved document differs:\n%s", got)
	}
}

func TestValidate(t *testing.T) {
	dir := testEnv(t)
	good := writeFile(t, dir, "good.xptv", sampleDoc)
	bad := writeFile(t, dir, "bad.xptv", strings.Replace(sampleDoc, `priority="(int)0"`, `volume="(double)1"`, 1))

	if _, err := execute(t, "validate", good); err != nil {
		t.Errorf("validate good: %v", err)
	}
	if _, err := execute(t, "validate", good, bad); err == nil {
		t.Error("validate should fail when a file is invalid")
	}

	c := New(io.Discard, LogInfo)
	results := c.validateFiles(t.Context(), []string{good, bad, filepath.Join(dir, "none.xptv")})
	if results[0].err != nil || results[0].nodes != 6 {
		t.Errorf("good result = %+v", results[0])
	}
	if codeOf(results[1].err) != xerrors.ErrCodeUnknownProperty {
		t.Errorf("bad result = %v", results[1].err)
	}
	if codeOf(results[2].err) != xerrors.ErrCodeFileNotFound {
		t.Errorf("missing result = %v", results[2].err)
	}
}

func TestGraphDOT(t *testing.T) {
	dir := testEnv(t)
	in := writeFile(t, dir, "demo.xptv", sampleDoc)
	out := filepath.Join(dir, "demo.dot")

	if _, err := execute(t, "graph", in, "-o", out); err != nil {
		t.Fatalf("graph: %v", err)
	}
	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"3" -> "timeline-object:0" [label="track-object-ref"];`) {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestCachePath(t *testing.T) {
	dir := testEnv(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "xptv.toml", "[cache]\nbackend = \"none\"\ndir = \""+filepath.ToSlash(filepath.Join(dir, "c"))+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(filepath.Join(dir, "c")) {
		t.Errorf("cache path = %q", out)
	}

	bad := writeFile(t, dir, "bad.toml", "unknown_key = 1\n")
	if _, err := execute(t, "--config", bad, "cache", "path"); !xerrors.Is(err, xerrors.ErrCodeInvalidInput) {
		t.Errorf("bad config: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "xptv") {
		t.Error("bash completion should mention the command name")
	}
}
