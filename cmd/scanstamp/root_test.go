package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gardar/scanstamp/pkg/batch"
	"github.com/gardar/scanstamp/pkg/config"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	if cmd.Use != "scanstamp" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("expected usage and errors to be silenced")
	}
	for _, name := range []string{"verbose", "config"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}

	var got []string
	for _, sub := range cmd.Commands() {
		got = append(got, sub.Name())
	}
	want := []string{"detect", "init", "run"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands (-want +got):\n%s", diff)
	}
}

func TestRunFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRunCmd()
	for _, name := range []string{"output-root", "oracle", "only-rotate", "allow-duplicates"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag %q", name)
		}
	}
	if usage := cmd.Flags().Lookup("oracle").Usage; !strings.Contains(usage, "(default "+config.DefaultBackend+")") {
		t.Errorf("oracle usage %q does not name the default backend", usage)
	}
	if !strings.Contains(cmd.Long, "-tags ocr") {
		t.Error("run help does not say how to enable tesseract")
	}
}

func TestInitWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf", "scanstamp.yml")
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output %q does not mention %s", out.String(), path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("written config (-want +got):\n%s", diff)
	}

	cmd = NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path})
	if err := cmd.Execute(); err == nil {
		t.Error("second init without --force should fail")
	}
}

func TestRunRejectsNonPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", writeConfig(t, dir), "--oracle", "none", "--output-root", dir, "a.pdf", "notes.txt"})
	err := cmd.Execute()
	if !errors.Is(err, batch.ErrInvalidExtension) {
		t.Errorf("err = %v, want ErrInvalidExtension", err)
	}
}

func TestRunMissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--config", writeConfig(t, dir), "--oracle", "none", "--output-root", dir,
		filepath.Join(dir, "missing.pdf")})
	err := cmd.Execute()
	if !errors.Is(err, batch.ErrNoDocuments) {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
	if !strings.Contains(out.String(), "missing.pdf") {
		t.Errorf("corrupt file not reported:\n%s", out.String())
	}
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scanstamp.yml")
	if err := config.Save(path, config.Default()); err != nil {
		t.Fatal(err)
	}
	return path
}
