package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, source string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`
app:
  name: "Test Studio"
  port: 8080
  timezone: "UTC"
database:
  driver: "sqlite"
  filename: %q
hours:
  source: %q
  days:
    monday:   { open: "11:00", close: "20:00" }
    saturday: { open: "10:30", close: "16:00" }
`, filepath.Join(dir, "data", "studio.db"), source)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func useConfig(t *testing.T, path string) {
	t.Helper()
	configPath = path
	atFlag = ""
	t.Cleanup(func() {
		configPath = ""
		atFlag = ""
	})
}

func run(t *testing.T, fn func(*cobra.Command, []string) error) string {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := fn(cmd, nil); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	return out.String()
}

func TestStatusCmd_At(t *testing.T) {
	useConfig(t, writeConfig(t, "config"))
	// Monday 19:10.
	atFlag = "2024-03-04T19:10:00Z"

	out := run(t, runStatus)

	for _, want := range []string{"Closing Soon (closing-soon)", "Closes in 50 minutes", "Monday 7:10 PM UTC"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCmd_RejectsBadTime(t *testing.T) {
	useConfig(t, writeConfig(t, "config"))
	atFlag = "monday evening"

	if err := runStatus(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected error for malformed --at")
	}
}

func TestHoursCmd(t *testing.T) {
	useConfig(t, writeConfig(t, "config"))

	out := run(t, runHours)

	if !strings.Contains(out, "Saturday") || !strings.Contains(out, "10:30 AM") || !strings.Contains(out, "4 PM") {
		t.Fatalf("hours output:\n%s", out)
	}
	if !strings.Contains(out, "Sunday") || !strings.Contains(out, "closed") {
		t.Fatalf("hours output missing closed day:\n%s", out)
	}
}

func TestDBCommands_SeedThenReadFromDatabase(t *testing.T) {
	path := writeConfig(t, "config")
	useConfig(t, path)

	if out := run(t, dbMigrateUpCmd.RunE); !strings.Contains(out, "Migrations applied") {
		t.Fatalf("migrate up output: %s", out)
	}
	if out := run(t, dbMigrateVersionCmd.RunE); !strings.Contains(out, "Version: 1, Dirty: false") {
		t.Fatalf("version output: %s", out)
	}
	if out := run(t, runSeed); !strings.Contains(out, "Seeded business hours") {
		t.Fatalf("seed output: %s", out)
	}

	// Read the same database back with the sqlite hours source.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	sqliteConfig := strings.Replace(string(data), `source: "config"`, `source: "sqlite"`, 1)
	if err := os.WriteFile(path, []byte(sqliteConfig), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	// Saturday 10:00, half an hour before opening.
	atFlag = "2024-03-09T10:00:00Z"
	out := run(t, runStatus)
	if !strings.Contains(out, "Opening Soon") || !strings.Contains(out, "Opens at 10:30 AM") {
		t.Fatalf("status from database:\n%s", out)
	}

	if out := run(t, dbMigrateDownCmd.RunE); !strings.Contains(out, "rolled back") {
		t.Fatalf("migrate down output: %s", out)
	}
	if out := run(t, dbMigrateVersionCmd.RunE); !strings.Contains(out, "Version: none") {
		t.Fatalf("version after down: %s", out)
	}
}
