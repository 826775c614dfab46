package version

import (
	"runtime"
	"strings"
	"testing"

	"ghl/internal/config"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Platform = %s, want %s", info.Platform, want)
	}
	if info.APIVersion != config.DefaultAPIVersion {
		t.Errorf("APIVersion = %s, want %s", info.APIVersion, config.DefaultAPIVersion)
	}
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestInfoString(t *testing.T) {
	info := Get()
	str := info.String()

	if !strings.HasPrefix(str, "ghl "+info.Version+"\n") {
		t.Errorf("String() = %q, want leading name and version line", str)
	}
	for _, want := range []string{info.Commit, info.Date, info.APIVersion, info.Platform} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}
}

func TestInfoShort(t *testing.T) {
	info := Get()
	if got, want := info.Short(), "ghl "+info.Version; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestBuildVariableDefaults(t *testing.T) {
	if Version == "" || Commit == "" || Date == "" {
		t.Errorf("build variables must default non-empty: %q %q %q", Version, Commit, Date)
	}
}
