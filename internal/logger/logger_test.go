package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"console info", "info", "console", zapcore.InfoLevel, false},
		{"default format", "warn", "", zapcore.WarnLevel, false},
		{"json debug", "debug", "json", zapcore.DebugLevel, false},
		{"invalid level", "loud", "console", 0, true},
		{"invalid format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
				return
			}
			if !tt.wantErr && GetLevel() != tt.wantLevel {
				t.Errorf("GetLevel() = %v, want %v", GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	if err := Init("info", "console"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	if GetLevel() != zapcore.ErrorLevel {
		t.Errorf("GetLevel() = %v, want error", GetLevel())
	}

	if err := SetLevel("nope"); err == nil {
		t.Error("SetLevel() should fail for an invalid level")
	}
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	Debug("debug msg")
	Info("info msg")
	Warn("file skipped", zap.String("path", "src/a.tsx"))
	Error("error msg")

	restore()
	Info("after restore")

	if logs.Len() != 4 {
		t.Fatalf("captured %d entries, want 4", logs.Len())
	}
	entry := logs.FilterMessage("file skipped").All()
	if len(entry) != 1 || entry[0].ContextMap()["path"] != "src/a.tsx" {
		t.Errorf("warn entry = %+v", entry)
	}
}

func TestLBeforeInitIsUsable(t *testing.T) {
	restore := Replace(zap.NewNop())
	defer restore()

	L().Info("no panic")
	if err := Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
