package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q", String())
	}
}

func TestFields(t *testing.T) {
	f := Fields()
	if f["version"] != Version || f["commit"] != Commit || f["built"] != Date {
		t.Errorf("Fields() = %v", f)
	}
}
