package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSetGlobalAndGlobal(t *testing.T) {
	defer SetGlobal(DefaultLogger())

	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	SetGlobal(l)
	if Global() != l {
		t.Error("Global() should return the logger set by SetGlobal")
	}
}

func TestConfigure(t *testing.T) {
	defer SetGlobal(DefaultLogger())

	l := Configure("debug", "json")

	if l.GetLevel() != LevelDebug {
		t.Errorf("Configure level = %v, want debug", l.GetLevel())
	}
	if Global() != l {
		t.Error("Configure should set the global logger")
	}
}

func TestGlobalHelpers(t *testing.T) {
	defer SetGlobal(DefaultLogger())

	var buf bytes.Buffer
	SetGlobal(New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf}))

	Infof("via helper", map[string]any{"n": 1})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Message != "via helper" {
		t.Errorf("Message = %q, want %q", entry.Message, "via helper")
	}
}
