package version

import (
	"strings"
	"testing"
)

func TestInfo_IncludesBuildFields(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "v1.4.0"
	GitCommit = "abc1234"

	if got := Short(); got != "v1.4.0" {
		t.Errorf("Short() = %q, want %q", got, "v1.4.0")
	}
	info := Info()
	for _, want := range []string{"brandkit", "v1.4.0", "abc1234"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() = %q, missing %q", info, want)
		}
	}
	m := Map()
	if m["version"] != "v1.4.0" || m["git_commit"] != "abc1234" {
		t.Errorf("Map() = %v", m)
	}
	if m["go_version"] == "" {
		t.Error("Map() missing go_version")
	}
}
