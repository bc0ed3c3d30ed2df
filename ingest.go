package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Ingestor reads the file at path and normalizes its contents into a [Table].
//
// Implementations are stateless singletons owned by the registry; all
// per-call state travels through the arguments. A nil table with a nil error
// is a valid result and means the file produced no data (see
// [UnsupportedIngestor]).
type Ingestor interface {
	Ingest(ctx context.Context, path string, c *Config) (*Table, error)
}

// headerCheck is a function that checks if the given header matches the expected magic bytes.
type headerCheck func([]byte) bool

type availableIngestor struct {
	Ingestor    Ingestor
	HeaderCheck headerCheck
	MagicBytes  [][]byte
	Offset      int
}

// availableIngestors maps file extensions to their ingestor singleton with
// the required magic bytes and potential offset. It is populated once and
// must not be modified at runtime.
var availableIngestors = map[string]availableIngestor{
	fileExtensionZip: {
		Ingestor:    &ZipIngestor{},
		HeaderCheck: isZip,
		MagicBytes:  magicBytesZip,
	},
	fileExtensionCSV: {
		Ingestor: &CSVIngestor{},
	},
}

// unsupportedIngestor is the fallback returned by [IngestorFor] for
// extensions without a registry entry.
var unsupportedIngestor = &UnsupportedIngestor{}

// maxHeaderLength is the maximum header length of all ingestors
var maxHeaderLength int

// init calculates the maximum header length
func init() {
	for _, in := range availableIngestors {
		needs := in.Offset
		for _, mb := range in.MagicBytes {
			if len(mb)+in.Offset > needs {
				needs = len(mb) + in.Offset
			}
		}
		if needs > maxHeaderLength {
			maxHeaderLength = needs
		}
	}
}

// IngestorFor returns the ingestor registered for the extension of path.
// If the extension is unknown, a diagnostic is logged and the
// [UnsupportedIngestor] singleton is returned, so that the failure decision
// is deferred to ingestion time.
func IngestorFor(path string, c *Config) Ingestor {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if in, ok := availableIngestors[ext]; ok {
		return in.Ingestor
	}
	c.Logger().Warn("extension not supported", "extension", ext, "path", path)
	return unsupportedIngestor
}

// Ingest resolves the ingestor for path and ingests the file with it.
func Ingest(ctx context.Context, path string, c *Config) (*Table, error) {
	return IngestorFor(path, c).Ingest(ctx, path, c)
}

// checkFileHeader reads the header of the file at path and verifies it
// against the magic bytes registered for ext. Extensions without a header
// check registered pass unchecked.
func checkFileHeader(path string, ext string) error {
	in, ok := availableIngestors[ext]
	if !ok || in.HeaderCheck == nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	header := make([]byte, maxHeaderLength)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrapf(err, "reading header of %s", path)
	}

	if !in.HeaderCheck(header[:n]) {
		return errors.Errorf("content of %s does not match its %s extension", path, ext)
	}
	return nil
}

// matchesMagicBytes checks if data matches any of the magicBytes at offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	for _, mb := range magicBytes {
		if offset+len(mb) > len(data) {
			continue
		}
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}
	return false
}

// handleError increases the error counter on td, sets the latest error and
// returns the error that ends the ingestion.
func handleError(td *TelemetryData, msg string, err error) error {
	td.IngestionErrors++
	td.LastIngestionError = fmt.Errorf("%s: %w", msg, err)
	return td.LastIngestionError
}

// now is a wrapper around time.Now, so it can be replaced in tests.
var now = time.Now

// captureIngestionDuration sets the duration on td based on the start time.
func captureIngestionDuration(td *TelemetryData, start time.Time) {
	td.IngestionDuration = now().Sub(start)
}
