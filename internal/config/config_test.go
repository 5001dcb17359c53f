package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsRegisterAllocationWhenOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jmmc.yaml")
	if err := os.WriteFile(path, []byte("optimize: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Optimize {
		t.Fatalf("expected optimize: true to be read")
	}
	if f.RegisterAllocation != -1 {
		t.Fatalf("expected RegisterAllocation to default to -1, got %d", f.RegisterAllocation)
	}
}

func TestLoad_ReadsExplicitRegisterAllocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jmmc.yaml")
	content := "optimize: false\nregisterAllocation: 4\noutputDir: build\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.RegisterAllocation != 4 {
		t.Fatalf("expected RegisterAllocation 4, got %d", f.RegisterAllocation)
	}
	if f.OutputDir != "build" {
		t.Fatalf("expected outputDir build, got %q", f.OutputDir)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestScanOverrides_NoDirectiveReturnsDefault(t *testing.T) {
	ov := ScanOverrides("class Foo {}\n")
	if ov.Registers != -1 || ov.Optimize != nil {
		t.Fatalf("expected default Override for source with no directive, got %+v", ov)
	}
}

func TestScanOverrides_ReadsRegistersAndOptimize(t *testing.T) {
	source := "// jmmc: {\"registers\": 3, \"optimize\": true}\nclass Foo {}\n"
	ov := ScanOverrides(source)
	if ov.Registers != 3 {
		t.Fatalf("expected Registers 3, got %d", ov.Registers)
	}
	if ov.Optimize == nil || !*ov.Optimize {
		t.Fatalf("expected Optimize true, got %+v", ov.Optimize)
	}
}

func TestScanOverrides_LastDirectiveWins(t *testing.T) {
	source := "// jmmc: {\"registers\": 1}\n// jmmc: {\"registers\": 9}\nclass Foo {}\n"
	ov := ScanOverrides(source)
	if ov.Registers != 9 {
		t.Fatalf("expected the last directive (9) to win, got %d", ov.Registers)
	}
}
