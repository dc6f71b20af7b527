// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlaunch/jlaunch/internal/config"
	"github.com/jlaunch/jlaunch/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.ClassPath = "lib/*"
	cfg.Properties = map[string]any{"b.key": "2", "a.key": true}
	cfg.JMX = config.JMXConfig{Enabled: true, Port: 9010}

	res := runCLI(t, cfg, nil, "config", "show")
	if res.err != nil {
		t.Fatalf("config show error = %v", res.err)
	}
	for _, want := range []string{"Launch", "executable:", "java", "lib/*", "JMX", "9010", "color_scheme:", "auto"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
	a := strings.Index(res.stdout, "a.key")
	b := strings.Index(res.stdout, "b.key")
	if a < 0 || b < 0 || a > b {
		t.Errorf("properties not listed in sorted order:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "(none)") {
		t.Errorf("empty environment not marked:\n%s", res.stdout)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Options = []string{"-Xmx1g"}

	res := runCLI(t, cfg, nil, "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump error = %v", res.err)
	}
	if res.stdout != config.GenerateCUE(cfg) {
		t.Errorf("dump output differs from GenerateCUE:\n%s", res.stdout)
	}
}

func TestConfigPath_Explicit(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, "jlaunch.cue", `executable: "java"`)

	res := runCLI(t, nil, nil, "--config", path, "config", "path")
	if res.err != nil {
		t.Fatalf("config path error = %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != path {
		t.Errorf("stdout = %q, want %q", res.stdout, path)
	}
	if strings.Contains(res.stderr, "does not exist") {
		t.Errorf("existing file reported missing:\n%s", res.stderr)
	}

	missing := filepath.Join(t.TempDir(), "missing.cue")
	res = runCLI(t, nil, nil, "--config", missing, "config", "path")
	if res.err != nil {
		t.Fatalf("config path error = %v", res.err)
	}
	if !strings.Contains(res.stderr, "does not exist") {
		t.Errorf("missing file not reported:\n%s", res.stderr)
	}
}

//nolint:paralleltest // overrides the process-wide config directory
func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	res := runCLI(t, nil, nil, "config", "init")
	if res.err != nil {
		t.Fatalf("config init error = %v", res.err)
	}
	path := filepath.Join(dir, "config.cue")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("written config differs from defaults:\n%s", data)
	}

	if err := os.WriteFile(path, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res = runCLI(t, nil, nil, "config", "init")
	if res.err != nil {
		t.Fatalf("config init error = %v", res.err)
	}
	if !strings.Contains(res.stderr, "already exists") {
		t.Errorf("stderr = %q, want an 'already exists' notice", res.stderr)
	}
	if data, _ := os.ReadFile(path); string(data) != "// mine\n" {
		t.Errorf("existing config overwritten without --force")
	}

	res = runCLI(t, nil, nil, "config", "init", "--force")
	if res.err != nil {
		t.Fatalf("config init --force error = %v", res.err)
	}
	if data, _ := os.ReadFile(path); string(data) == "// mine\n" {
		t.Errorf("--force did not overwrite the config")
	}
}
