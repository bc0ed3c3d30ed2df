package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tabulardata/go-ingest"
)

func TestIngestorFor(t *testing.T) {
	cfg := ingest.NewConfig()

	tests := []struct {
		name string
		path string
		want ingest.Ingestor
	}{
		{name: "zip", path: "/tmp/data.zip", want: &ingest.ZipIngestor{}},
		{name: "zip upper case", path: "/tmp/DATA.ZIP", want: &ingest.ZipIngestor{}},
		{name: "csv", path: "rel/data.csv", want: &ingest.CSVIngestor{}},
		{name: "txt", path: "/tmp/notes.txt", want: &ingest.UnsupportedIngestor{}},
		{name: "no extension", path: "/tmp/Makefile", want: &ingest.UnsupportedIngestor{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ingest.IngestorFor(test.path, cfg)
			switch test.want.(type) {
			case *ingest.ZipIngestor:
				if _, ok := got.(*ingest.ZipIngestor); !ok {
					t.Errorf("expected ZipIngestor, got %T", got)
				}
			case *ingest.CSVIngestor:
				if _, ok := got.(*ingest.CSVIngestor); !ok {
					t.Errorf("expected CSVIngestor, got %T", got)
				}
			case *ingest.UnsupportedIngestor:
				if _, ok := got.(*ingest.UnsupportedIngestor); !ok {
					t.Errorf("expected UnsupportedIngestor, got %T", got)
				}
			}
		})
	}
}

func TestIngestorForReturnsSingleton(t *testing.T) {
	cfg := ingest.NewConfig()
	first := ingest.IngestorFor("a.csv", cfg)
	second := ingest.IngestorFor("b.csv", cfg)
	if first != second {
		t.Error("expected the same ingestor instance for the same extension")
	}
}

func TestIngestUnsupportedIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := ingest.Ingest(context.Background(), path, ingest.NewConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table != nil {
		t.Errorf("expected nil table for unsupported extension, got %v", table)
	}
}
