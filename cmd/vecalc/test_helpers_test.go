package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	workDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("VECALC_LOG_LEVEL", "")

	workDir := filepath.Join(base, "work")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir work: %v", err)
	}

	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		baseDir:    base,
		workDir:    workDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, args, env.configPath)
}

// writeBankJSON writes the valid fixture document and returns its path.
func (env *cliTestEnv) writeBankJSON(t *testing.T, name string) string {
	t.Helper()
	return testsupport.WriteFile(t, env.workDir, name, []byte(testsupport.ValidConfigJSON()))
}

// writeContainer encrypts text and writes the container to name.
func (env *cliTestEnv) writeContainer(t *testing.T, name, text string) string {
	t.Helper()
	data, err := container.Encrypt([]byte(text))
	if err != nil {
		t.Fatalf("encrypt fixture: %v", err)
	}
	return testsupport.WriteFile(t, env.workDir, name, data)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
