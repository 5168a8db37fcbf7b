package dotenv

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/it-atelier-gn/envloader/internal/envio"
	"github.com/it-atelier-gn/envloader/internal/keys"
	"github.com/it-atelier-gn/envloader/internal/osenv"
)

func TestGetReturnsNotFoundError(t *testing.T) {
	e := newBare()
	_, err := e.Get("ABSENT")
	if err == nil {
		t.Fatalf("expected error for absent key")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "ABSENT" {
		t.Fatalf("expected *NotFoundError{ABSENT}, got %v", err)
	}
}

func TestGetKnownDelegatesToMapping(t *testing.T) {
	e := newBare()
	if errs := e.Parse([]byte("LOG_LEVEL=debug")); len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	got, err := e.GetKnown(keys.LogLevel)
	if err != nil {
		t.Fatalf("GetKnown: %v", err)
	}
	if got != "debug" {
		t.Fatalf("GetKnown(LogLevel) = %q, want debug", got)
	}
	if _, err := e.GetKnown(keys.Password); err == nil {
		t.Fatalf("expected not-found for absent known key")
	}
}

func TestLoadMissingFileSilent(t *testing.T) {
	e := newBare()
	err := e.Load(filepath.Join(t.TempDir(), "absent.env"), false, true)
	if err != nil {
		t.Fatalf("silent load of missing file: %v", err)
	}
	if e.Len() != 0 {
		t.Fatalf("expected zero entries, got %d", e.Len())
	}
}

func TestLoadMissingFileLoud(t *testing.T) {
	e := newBare()
	path := filepath.Join(t.TempDir(), "absent.env")
	err := e.Load(path, false, false)
	if err == nil {
		t.Fatalf("expected error for missing file without silent")
	}
	if !envio.IsNotFound(err) {
		t.Fatalf("expected not-found FileError, got %v", err)
	}
}

func TestLoadRespectsMaxRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1\nB=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newBare()
	e.MaxRead = 2
	if err := e.Load(path, false, false); err == nil {
		t.Fatalf("expected too-large error")
	}
}

func TestLoadParsesAndResolves(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1\nC=$A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newBare()
	if err := e.Load(path, false, false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := e.Lookup("C"); got != "1" {
		t.Fatalf("C = %q, want 1", got)
	}
}

func TestSetInProcessAppliesFileEntries(t *testing.T) {
	e := newWithAmbient(true, map[string]string{"AMBIENT": "x"})
	if errs := e.Parse([]byte("A=1\nB=$A")); len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}

	fake := osenv.NewFake(nil)
	if err := e.SetInProcess(fake); err != nil {
		t.Fatalf("SetInProcess: %v", err)
	}
	want := []string{"A=1", "B=1"}
	if !reflect.DeepEqual(fake.Sets, want) {
		t.Fatalf("sets = %v, want %v", fake.Sets, want)
	}
	// seeded ambient entries are not re-applied
	if _, ok := fake.Lookup("AMBIENT"); ok {
		t.Fatalf("ambient entry leaked into process sets")
	}
}

func TestExportAllSortedAndComplete(t *testing.T) {
	e := newWithAmbient(false, map[string]string{"AMB": "1"})
	if errs := e.Parse([]byte("Z=last\nA=first")); len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}

	got := e.ExportAll(false)
	want := []string{"A=first", "Z=last"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExportAll(false) = %v, want %v", got, want)
	}

	got = e.ExportAll(true)
	want = []string{"A=first", "AMB=1", "Z=last"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExportAll(true) = %v, want %v", got, want)
	}
}

func TestExportAllMappingWinsOverAmbient(t *testing.T) {
	e := newWithAmbient(false, map[string]string{"A": "ambient"})
	if errs := e.Parse([]byte("A=file")); len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	got := e.ExportAll(true)
	want := []string{"A=file"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExportAll(true) = %v, want %v", got, want)
	}
}

func TestAppendToFileRecordsEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("A=1"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newBare()
	if err := e.AppendToFile("B", "2", path); err != nil {
		t.Fatalf("AppendToFile: %v", err)
	}

	if got, _ := e.Lookup("B"); got != "2" {
		t.Fatalf("B not recorded in mapping")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "A=1\nB=2\n" {
		t.Fatalf("file = %q, want %q", b, "A=1\nB=2\n")
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	e := newBare()
	if errs := e.Parse([]byte("A=1")); len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	m := e.Values()
	m["A"] = "mutated"
	if got, _ := e.Lookup("A"); got != "1" {
		t.Fatalf("Values() exposed internal map")
	}
}
