package iox

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func roundTrip(t *testing.T, path string) {
	t.Helper()
	w, err := CreateAuto(path)
	if err != nil {
		t.Fatalf("CreateAuto: %v", err)
	}
	if _, err := io.WriteString(w, "hello gating logs\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenAuto(path)
	if err != nil {
		t.Fatalf("OpenAuto: %v", err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello gating logs\n" {
		t.Errorf("read back %q", b)
	}
}

func TestRoundTripPlain(t *testing.T) {
	roundTrip(t, filepath.Join(t.TempDir(), "plain.xmlLog"))
}

func TestRoundTripGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archived.xmlLog.gz")
	roundTrip(t, path)

	// The on-disk bytes must actually be compressed.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) >= 2 && !(raw[0] == 0x1f && raw[1] == 0x8b) {
		t.Errorf("file does not start with gzip magic: % x", raw[:2])
	}
}

func TestOpenAutoMissing(t *testing.T) {
	if _, err := OpenAuto(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
