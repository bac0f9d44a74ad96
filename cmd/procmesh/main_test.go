package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/pkg/formats"
	"github.com/Faultbox/procmesh/pkg/procgen"
)

func TestList(t *testing.T) {
	var out bytes.Buffer
	if err := run("list", nil, &out); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Fields(out.String())
	if len(lines) != len(procgen.Names()) {
		t.Errorf("expected %d generators, got %d", len(procgen.Names()), len(lines))
	}
}

func TestGenSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sphere.stl")

	var out bytes.Buffer
	if err := run("gen", []string{"-o", path, "sphere"}, &out); err != nil {
		t.Fatalf("gen failed: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote: "+path) {
		t.Errorf("unexpected output: %s", out.String())
	}

	stl, err := formats.ParseSTLFile(path)
	if err != nil {
		t.Fatalf("ParseSTLFile failed: %v", err)
	}
	m, _ := procgen.Generate("sphere", procgen.DefaultParams())
	if len(stl.Triangles) != m.TriangleCount() {
		t.Errorf("expected %d triangles, got %d", m.TriangleCount(), len(stl.Triangles))
	}
}

func TestGenStdout(t *testing.T) {
	var out bytes.Buffer
	if err := run("gen", []string{"-o", "-", "plane"}, &out); err != nil {
		t.Fatalf("gen failed: %v", err)
	}
	if !strings.Contains(out.String(), "o plane\n") {
		t.Errorf("expected OBJ on stdout, got: %s", out.String())
	}
}

func TestGenWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(cfgPath, []byte("params:\n  plane:\n    width: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run("info", []string{"-config", cfgPath, "plane"}, &out); err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out.String(), "Size:      4.000 x 0.000 x 1.000") {
		t.Errorf("config width not applied:\n%s", out.String())
	}
}

func TestInfoSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.stl")
	if err := run("gen", []string{"-o", path, "cube"}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run("info", []string{path}, &out); err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out.String(), "Triangles: 12") {
		t.Errorf("expected 12 triangles:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `Header:    "cube"`) {
		t.Errorf("expected cube header:\n%s", out.String())
	}
}

func TestGenErrors(t *testing.T) {
	if err := run("gen", []string{"teapot"}, &bytes.Buffer{}); !errors.Is(err, procgen.ErrUnknownGenerator) {
		t.Errorf("expected ErrUnknownGenerator, got %v", err)
	}
	if err := run("gen", nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
	if err := run("gen", []string{"-o", filepath.Join(t.TempDir(), "x.fbx"), "cube"}, &bytes.Buffer{}); !errors.Is(err, formats.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run("config", nil, &out); err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out.String(), "generator: cylinder") {
		t.Errorf("default config missing generator:\n%s", out.String())
	}

	path := filepath.Join(t.TempDir(), config.FileName)
	if err := run("config", []string{"-o", path}, &bytes.Buffer{}); err != nil {
		t.Fatalf("config -o failed: %v", err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Generator != "cylinder" {
		t.Errorf("expected cylinder, got %s", cfg.Generator)
	}
}
