package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/procmesh/pkg/math"
	"github.com/Faultbox/procmesh/pkg/mesh"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
			excluded: []string{},
		},
		{
			// Unknown levels fall back to info.
			level:    "verbose",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			err := InitWithOptions(Options{
				Level: tt.level,
				File: FileConfig{
					Path:       logFile,
					MaxSizeMB:  10,
					MaxBackups: 1,
					MaxAgeDays: 1,
				},
			})
			if err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, `"level":"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, `"level":"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(Options{Level: "info", Console: &buf}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = InitWithOptions(Options{}) }()

	Named("viewer").Info("mesh ready")
	Sync()

	out := buf.String()
	if !strings.Contains(out, "mesh ready") {
		t.Errorf("message missing from console output: %q", out)
	}
	if !strings.Contains(out, "viewer") {
		t.Errorf("logger name missing from console output: %q", out)
	}
}

func TestNopBeforeInit(t *testing.T) {
	// The package-level logger is usable before Init.
	Log = zap.NewNop()
	Sugar = Log.Sugar()
	Info("dropped")
	Sugar.Infof("dropped %d", 1)
}

func TestMeshFields(t *testing.T) {
	b := mesh.NewBuilder()
	mesh.BuildQuadXZ(b, math.Vec3{}, 2, 3)
	m := b.Finalize()

	core, logs := observer.New(zap.InfoLevel)
	zap.New(core).Info("generated", MeshFields("plane", m, 5*time.Millisecond)...)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["generator"] != "plane" {
		t.Errorf("expected generator plane, got %v", fields["generator"])
	}
	if fields["vertices"] != int64(4) {
		t.Errorf("expected 4 vertices, got %v", fields["vertices"])
	}
	if fields["triangles"] != int64(2) {
		t.Errorf("expected 2 triangles, got %v", fields["triangles"])
	}
	if fields["elapsed"] != 5*time.Millisecond {
		t.Errorf("expected 5ms, got %v", fields["elapsed"])
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/procmesh.log")

	if cfg.Path != "/tmp/procmesh.log" {
		t.Errorf("expected path /tmp/procmesh.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 14 {
		t.Errorf("expected MaxAgeDays 14, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
