package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.2.3", "abc123"
	info := Get()
	if info.Version != "v1.2.3" || info.Commit != "abc123" {
		t.Errorf("Get() = %+v", info)
	}
	if !strings.Contains(info.String(), "commit: abc123") {
		t.Errorf("String() = %q", info.String())
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.HasSuffix(tmpl, "\n") {
		t.Error("Template() should end with a newline")
	}
}
