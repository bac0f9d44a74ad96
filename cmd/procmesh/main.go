// procmesh is a CLI utility for generating procedural meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procmesh/internal/config"
	"github.com/Faultbox/procmesh/internal/logger"
	"github.com/Faultbox/procmesh/pkg/formats"
	"github.com/Faultbox/procmesh/pkg/mesh"
	"github.com/Faultbox/procmesh/pkg/procgen"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, stdout io.Writer) error {
	switch command {
	case "list", "ls":
		return cmdList(stdout)
	case "gen", "generate":
		return cmdGen(args, stdout)
	case "info":
		return cmdInfo(args, stdout)
	case "config":
		return cmdConfig(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `procmesh - procedural mesh generator

Usage:
  procmesh <command> [options]

Commands:
  list                                List generators
  gen [options] <generator>           Generate a mesh and write it to a file
  info [options] <generator|file.stl> Show vertex, triangle and bounds stats
  config [-o path]                    Print or save the default config

Options for gen and info:
  -config <path>   Load generator parameters from a YAML config
  -seed <n>        Seed for randomized generators
  -o <path>        Output file (.obj or .stl); "-" writes OBJ to stdout

Examples:
  procmesh gen -o flower.obj flower
  procmesh gen -seed 7 -o ground.stl ground
  procmesh info mushroom
  procmesh config -o procmesh.yaml`)
}

func cmdList(stdout io.Writer) error {
	for _, name := range procgen.Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

// genFlags are shared by gen and info.
type genFlags struct {
	fs     *flag.FlagSet
	config *string
	seed   *uint64
	output *string
}

func newGenFlags(name string) *genFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &genFlags{
		fs:     fs,
		config: fs.String("config", "", "Path to config file"),
		seed:   fs.Uint64("seed", 0, "Seed for randomized generators"),
		output: fs.String("o", "", "Output file (.obj or .stl)"),
	}
}

// generate builds the named mesh with parameters from the optional config.
func (g *genFlags) generate(name string) (*mesh.Mesh, error) {
	cfg, err := config.LoadFile(*g.config)
	if err != nil {
		return nil, err
	}
	if *g.seed != 0 {
		cfg.Seed = *g.seed
	}

	start := time.Now()
	m, err := procgen.Generate(name, cfg.GeneratorParams())
	if err != nil {
		return nil, err
	}
	logger.Info("mesh generated", logger.MeshFields(name, m, time.Since(start))...)
	return m, nil
}

func cmdGen(args []string, stdout io.Writer) error {
	gf := newGenFlags("gen")
	if err := gf.fs.Parse(args); err != nil {
		return errUsage
	}
	if gf.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: procmesh gen [-config path] [-seed n] [-o out.obj] <generator>")
		return errUsage
	}

	name := gf.fs.Arg(0)
	m, err := gf.generate(name)
	if err != nil {
		return err
	}

	out := *gf.output
	switch out {
	case "-":
		return formats.WriteOBJ(stdout, m, name)
	case "":
		out = name + ".obj"
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := formats.SaveFile(out, m, name); err != nil {
		return err
	}

	logger.Info("mesh written", zap.String("path", out))
	fmt.Fprintf(stdout, "Wrote: %s (%d vertices, %d triangles)\n", out, m.VertexCount(), m.TriangleCount())
	return nil
}

func cmdInfo(args []string, stdout io.Writer) error {
	gf := newGenFlags("info")
	if err := gf.fs.Parse(args); err != nil {
		return errUsage
	}
	if gf.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: procmesh info [-config path] [-seed n] <generator|file.stl>")
		return errUsage
	}

	target := gf.fs.Arg(0)
	var m *mesh.Mesh
	if strings.EqualFold(filepath.Ext(target), ".stl") {
		stl, err := formats.ParseSTLFile(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "File:      %s\n", target)
		fmt.Fprintf(stdout, "Header:    %q\n", stl.Header)
		m = stl.Mesh()
	} else {
		var err error
		if m, err = gf.generate(target); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Generator: %s\n", target)
	}

	size := m.Bounds.Size()
	fmt.Fprintf(stdout, "Vertices:  %d\n", m.VertexCount())
	fmt.Fprintf(stdout, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(stdout, "Normals:   %t\n", m.HasNormals())
	fmt.Fprintf(stdout, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Fprintf(stdout, "Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	output := fs.String("o", "", "Write to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg := config.Default()
	if *output != "" {
		if err := cfg.SaveTo(*output); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote: %s\n", *output)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
