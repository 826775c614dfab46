package cli

import (
	"testing"

	"ghl/internal/config"
	"ghl/internal/keyring"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv(config.TokenEnvVar, "")
	t.Setenv(config.LocationEnvVar, "")
	t.Setenv("GHL_CONFIG_DIR", t.TempDir())

	cli := New()
	cli.Store = config.NewStoreAt(config.GetPaths(), keyring.NewMockStore())
	return cli
}

func TestOutputFormatPrecedence(t *testing.T) {
	cli := newTestCLI(t)

	// Configured default.
	if err := cli.Store.UpdateOutputFormat("yaml"); err != nil {
		t.Fatalf("UpdateOutputFormat() error = %v", err)
	}
	if got, err := cli.outputFormat(); err != nil || got != FormatYAML {
		t.Errorf("outputFormat() = %v, %v; want configured yaml", got, err)
	}

	// Explicit --output beats the configured default.
	cli.outputFlag = "csv"
	if got, _ := cli.outputFormat(); got != FormatCSV {
		t.Errorf("outputFormat() = %v, want csv from flag", got)
	}

	// --csv/--json beat --output.
	cli.csvFlag = true
	if got, _ := cli.outputFormat(); got != FormatCSV {
		t.Errorf("outputFormat() = %v, want csv", got)
	}
	cli.jsonFlag = true
	if got, _ := cli.outputFormat(); got != FormatJSON {
		t.Errorf("outputFormat() = %v, want json over csv", got)
	}

	// --quiet beats everything.
	cli.quietFlag = true
	if got, _ := cli.outputFormat(); got != FormatQuiet {
		t.Errorf("outputFormat() = %v, want quiet", got)
	}
}

func TestOutputFormatInvalidFlag(t *testing.T) {
	cli := newTestCLI(t)

	cli.outputFlag = "xml"
	if _, err := cli.outputFormat(); err == nil {
		t.Error("outputFormat() with invalid flag should fail")
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	cli := newTestCLI(t)

	if _, err := cli.newClient(); err != ErrNoToken {
		t.Errorf("newClient() error = %v, want ErrNoToken", err)
	}

	if err := cli.Store.AddOrUpdateProfile("work", "token", "loc-1"); err != nil {
		t.Fatalf("AddOrUpdateProfile() error = %v", err)
	}
	client, err := cli.newClient()
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	defer client.Close()
	if got := client.LocationID(); got != "loc-1" {
		t.Errorf("client location = %q, want profile location", got)
	}
}

func TestRequireLocation(t *testing.T) {
	cli := newTestCLI(t)

	if _, err := cli.requireLocation(); err != ErrNoLocation {
		t.Errorf("requireLocation() error = %v, want ErrNoLocation", err)
	}

	t.Setenv(config.LocationEnvVar, "env-loc")
	loc, err := cli.requireLocation()
	if err != nil {
		t.Fatalf("requireLocation() error = %v", err)
	}
	if loc != "env-loc" {
		t.Errorf("requireLocation() = %q, want env location", loc)
	}
}

func TestCommandsRegistered(t *testing.T) {
	cli := newTestCLI(t)

	want := []string{
		"version", "config", "profile", "contacts", "opportunities",
		"pipelines", "calendars", "conversations", "workflows", "tags",
		"tasks", "users", "locations", "custom-fields", "searches",
	}
	registered := map[string]bool{}
	for _, cmd := range cli.rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
