package logger

import (
	"bytes"
	"os"
	"testing"
)

// capture redirects stdout around fn so tests don't spam the output.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestLevels_NoPanic(t *testing.T) {
	capture(t, func() {
		Info("TAG", "message")
		Success("TAG", "message")
		Warn("TAG", "message")
		Error("TAG", "message")
	})
	// Output is environment-dependent (colors); just ensure no panic.
}

func TestSectionAndStats(t *testing.T) {
	out := capture(t, func() {
		Section("Catalogue")
		Stats("Items", 12345)
	})
	if out == "" {
		t.Fatal("Section/Stats produced no output")
	}
}

func TestBanner_NoPanic(t *testing.T) {
	capture(t, func() {
		Banner("v1.0.0")
		Banner("")
	})
}
