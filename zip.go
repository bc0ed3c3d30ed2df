package ingest

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// fileExtensionZip is the file extension for zip files.
const fileExtensionZip = "zip"

// magicBytesZip contains the magic bytes for a zip archive. The second
// entry is the end-of-central-directory signature that an archive without
// entries starts with.
// reference: https://golang.org/pkg/archive/zip/
var magicBytesZip = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
	{0x50, 0x4B, 0x05, 0x06},
}

// isZip checks if data is a zip archive. It returns true if data is a zip archive and false if data is not a zip archive.
func isZip(data []byte) bool {
	return matchesMagicBytes(data, 0, magicBytesZip)
}

// ZipIngestor expands a zip archive and ingests all its contents. The
// resulting table is the row-wise concatenation of all tables that can be
// ingested from the files in the archive, in the order the files are found.
type ZipIngestor struct{}

// Ingest extracts the archive at path into the sibling directory
// <parent>/<stem>/, resolves an ingestor for every extracted regular file
// and concatenates the results. An archive that contains no regular files
// fails with an error satisfying errors.Is(err, fs.ErrNotExist). Nested
// archives are resolved recursively.
func (i *ZipIngestor) Ingest(ctx context.Context, path string, c *Config) (*Table, error) {
	// prepare telemetry data collection and emit
	td := &TelemetryData{IngestedType: fileExtensionZip}
	defer c.TelemetryHook()(ctx, td)
	defer captureIngestionDuration(td, now())

	c.Logger().Info("ingesting zip", "path", path)

	// verify the archive header before anything is written to disk
	if err := checkFileHeader(path, fileExtensionZip); err != nil {
		return nil, handleError(td, "cannot ingest zip", err)
	}

	base := filepath.Base(path)
	dst := filepath.Join(filepath.Dir(path), strings.TrimSuffix(base, filepath.Ext(base)))
	if err := extractZip(ctx, path, dst, c, td); err != nil {
		return nil, handleError(td, "cannot extract zip", err)
	}

	// enumerate all regular files below the extraction directory
	var found []string
	err := filepath.WalkDir(dst, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, handleError(td, "cannot walk extracted files", err)
	}
	if len(found) == 0 {
		return nil, handleError(td, "cannot ingest zip", errors.Wrapf(fs.ErrNotExist, "no files found in archive %s", path))
	}

	// resolve and ingest each file, concatenate row-wise in found order
	tables := make([]*Table, 0, len(found))
	for _, file := range found {
		in := IngestorFor(file, c)
		if _, ok := in.(*UnsupportedIngestor); ok {
			td.UnsupportedFiles++
			td.LastUnsupportedFile = file
		}
		table, err := in.Ingest(ctx, file, c)
		if err != nil {
			return nil, handleError(td, "cannot ingest extracted file", err)
		}
		if table != nil {
			td.IngestedFiles++
		}
		tables = append(tables, table)
	}

	result := Concat(tables...)
	td.IngestedRows = int64(result.NumRows())
	return result, nil
}

// extractZip reads the zip file at src and extracts its contents below dst.
// It checks ctx for cancellation between entries and enforces the maximum
// file count from c.
func extractZip(ctx context.Context, src string, dst string, c *Config, td *TelemetryData) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return errors.Wrapf(err, "opening archive %s", src)
	}
	defer reader.Close()

	if err := os.MkdirAll(dst, 0755); err != nil {
		return errors.Wrap(err, "creating extraction directory")
	}

	var fileCounter int64
	for _, f := range reader.File {
		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return err
		}

		// check for path traversal before touching the filesystem
		name := filepath.Clean(f.Name)
		if strings.HasPrefix(name, ".."+string(os.PathSeparator)) || filepath.IsAbs(name) {
			return errors.Errorf("path traversal detected in archive entry %q", f.Name)
		}
		target := filepath.Join(dst, name)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, "creating directory %s", target)
			}
			continue
		}

		// check for maximum files in archive
		fileCounter++
		if c.MaxFiles() != -1 && fileCounter > c.MaxFiles() {
			return errors.Errorf("maximum files in archive exceeded (%d)", c.MaxFiles())
		}

		if err := extractZipEntry(f, target, c); err != nil {
			return err
		}
		td.ExtractedFiles++
	}

	return nil
}

// extractZipEntry writes the content of the archive entry f to target.
func extractZipEntry(f *zip.File, target string, c *Config) error {
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		if err != nil {
			return errors.Wrapf(err, "invalid path %s", target)
		}
		if !c.Overwrite() {
			return errors.Errorf("file already exists: %s", target)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", target)
	}

	src, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "opening archive entry %s", f.Name)
	}
	defer src.Close()

	dstFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating file %s", target)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, src); err != nil {
		return errors.Wrapf(err, "writing file %s", target)
	}

	return nil
}
