package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q

[bluesky]
handle = "station.test"
password = "test-password"

[archive]
enabled = true
path = %q
%s`,
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "archive", "shortwave.db"),
		extra,
	)
	path := filepath.Join(base, "shortwave.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateIsDeterministicWithSeed(t *testing.T) {
	first, err := runCommand(t, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	second, err := runCommand(t, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical output for same seed:\n%s\n----\n%s", first, second)
	}
	if !strings.Contains(first, "Language: ") {
		t.Fatalf("expected language line in output, got:\n%s", first)
	}
	if !strings.Contains(first, "Character count: ") {
		t.Fatalf("expected character count line in output, got:\n%s", first)
	}
}

func TestGenerateVariesAcrossSeeds(t *testing.T) {
	first, err := runCommand(t, "generate", "--seed", "1")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	second, err := runCommand(t, "generate", "--seed", "99")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected different seeds to produce different broadcasts")
	}
}

func TestGenerateMarkersLine(t *testing.T) {
	out, err := runCommand(t, "generate", "--seed", "7", "--markers")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	shape := regexp.MustCompile(`(?m)^Markers: (β+) (β+) (β+)$`)
	match := shape.FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("expected a three-burst markers line, got:\n%s", out)
	}
	if match[1] != match[2] || match[2] != match[3] {
		t.Fatalf("expected identical bursts, got:\n%s", out)
	}

	plain, err := runCommand(t, "generate", "--seed", "7")
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if strings.Contains(plain, "Markers: ") {
		t.Fatalf("expected no markers line without the flag, got:\n%s", plain)
	}
}

func TestRenderTable(t *testing.T) {
	if got := renderTable(nil, nil); got != "" {
		t.Fatalf("expected empty output for no headers, got %q", got)
	}

	out := renderTable(
		[]string{"ID", "NAME", "COUNT"},
		[][]string{
			{"1", "alpha", "42"},
			{"2", "beta"},
		},
		0, 2,
	)
	for _, want := range []string{"ID", "NAME", "COUNT", "alpha", "42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q, got:\n%s", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) < 4 {
		t.Fatalf("expected bordered table output, got:\n%s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config", "shortwave.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to mention %s, got:\n%s", target, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[bluesky]") {
		t.Fatalf("expected sample config to contain bluesky section, got:\n%s", data)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("expected init with --overwrite to succeed: %v", err)
	}
}

func TestHistoryEmptyArchive(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	out, err := runCommand(t, "--config", cfgPath, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(out, "No broadcasts recorded yet") {
		t.Fatalf("expected empty-history message, got:\n%s", out)
	}
}

func TestHistoryDisabledArchive(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	content, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	updated := strings.Replace(string(content), "enabled = true", "enabled = false", 1)
	if err := os.WriteFile(cfgPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "history")
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(out, "Archive is disabled") {
		t.Fatalf("expected disabled-archive message, got:\n%s", out)
	}
}

func TestDepsReportsMissingTools(t *testing.T) {
	extra := `
[audio]
espeak_binary = "definitely-not-installed-espeak"
`
	cfgPath := writeTestConfig(t, extra)
	out, err := runCommand(t, "--config", cfgPath, "deps")
	if err == nil {
		t.Fatal("expected error when a required tool is missing")
	}
	if !strings.Contains(out, "eSpeak") {
		t.Fatalf("expected table to list eSpeak, got:\n%s", out)
	}
}

func TestPostRequiresCredentials(t *testing.T) {
	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q
`, filepath.Join(base, "work"), filepath.Join(base, "logs"))
	cfgPath := filepath.Join(base, "shortwave.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("BLUESKY_HANDLE", "")
	t.Setenv("BLUESKY_PASSWORD", "")

	if _, err := runCommand(t, "--config", cfgPath, "post"); err == nil {
		t.Fatal("expected post to fail without credentials")
	}
}

func TestLanguageLabel(t *testing.T) {
	if got := languageLabel("ru"); got != "Russian" {
		t.Fatalf("expected Russian, got %q", got)
	}
	if got := languageLabel("morse"); got != "Morse" {
		t.Fatalf("expected Morse, got %q", got)
	}
	if got := languageLabel("xx"); got != "Xx" {
		t.Fatalf("expected pass-through title case, got %q", got)
	}
}
