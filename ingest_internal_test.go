package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsZip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "zip header", data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, want: true},
		{name: "no zip header", data: []byte("id,name\n1,alice"), want: false},
		{name: "short input", data: []byte{0x50, 0x4B}, want: false},
		{name: "empty input", data: nil, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isZip(test.data); got != test.want {
				t.Errorf("isZip(%v) = %v, want %v", test.data, got, test.want)
			}
		})
	}
}

func TestMaxHeaderLength(t *testing.T) {
	// the registry init must account for the zip magic bytes
	if maxHeaderLength < len(magicBytesZip[0]) {
		t.Errorf("maxHeaderLength %d is shorter than the zip magic bytes", maxHeaderLength)
	}
}

func TestCheckFileHeader(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "data.zip")
	if err := os.WriteFile(zipPath, []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(dir, "text.zip")
	if err := os.WriteFile(textPath, []byte("id,name\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := checkFileHeader(zipPath, fileExtensionZip); err != nil {
		t.Errorf("expected zip header to pass, got %v", err)
	}
	if err := checkFileHeader(textPath, fileExtensionZip); err == nil {
		t.Error("expected mismatching header to fail")
	}
	// extensions without registered magic bytes pass unchecked
	if err := checkFileHeader(textPath, fileExtensionCSV); err != nil {
		t.Errorf("expected csv to pass unchecked, got %v", err)
	}
	if err := checkFileHeader(filepath.Join(dir, "missing.zip"), fileExtensionZip); err == nil {
		t.Error("expected missing file to fail")
	}
}

func TestCaptureIngestionDuration(t *testing.T) {
	start := time.Now()
	restore := now
	now = func() time.Time { return start.Add(3 * time.Second) }
	defer func() { now = restore }()

	td := &TelemetryData{}
	captureIngestionDuration(td, start)

	if td.IngestionDuration != 3*time.Second {
		t.Errorf("expected duration of 3s, got %v", td.IngestionDuration)
	}
}

func TestHandleError(t *testing.T) {
	td := &TelemetryData{}
	cause := errors.New("boom")

	err := handleError(td, "cannot ingest", cause)

	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, cause) {
		t.Error("expected returned error to wrap the cause")
	}
	if td.IngestionErrors != 1 {
		t.Errorf("expected 1 ingestion error, got %d", td.IngestionErrors)
	}
	if td.LastIngestionError == nil {
		t.Error("expected last ingestion error to be recorded")
	}
}
