package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.0.0", "0123456789abcdef0123"
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} v1.0.0 (0123456789ab,") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: 0123456789abcdef0123") {
		t.Errorf("String() = %q", String())
	}
}
