package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barmeter.yaml")

	c := Default()
	c.Driver = "ht16k33"
	c.FPS = 40
	c.Layout = Layout{
		Mode:      "table",
		Direction: "reverse",
		Table: []Entry{
			{Dev: 0, Row: 1, Col: 2},
			{Dev: 1, Row: 0, Col: 7},
		},
	}
	if err := Save(path, c); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Driver != "ht16k33" || got.FPS != 40 {
		t.Fatalf("load: got %+v", got)
	}
	if got.Layout.Mode != "table" || got.Layout.Direction != "reverse" {
		t.Fatalf("layout: got %+v", got.Layout)
	}
	if len(got.Layout.Table) != 2 || got.Layout.Table[1] != (Entry{Dev: 1, Col: 7}) {
		t.Fatalf("table: got %+v", got.Layout.Table)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barmeter.yaml")
	if err := os.WriteFile(path, []byte("driver: fake\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Driver != "fake" {
		t.Fatalf("driver: got %q", got.Driver)
	}
	if got.FPS != 50 || got.Layout.Preset != "BL28SK" {
		t.Fatalf("defaults not kept: got %+v", got)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
