package ingest

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// fileExtensionCSV is the file extension for comma-separated files.
const fileExtensionCSV = "csv"

// CSVIngestor parses a comma-separated file fully into memory. The first
// record is the header and becomes the column names of the resulting table.
type CSVIngestor struct{}

// Ingest reads the file at path and returns its contents as a [Table].
// Parser errors are returned as-is to the caller; there is no partial
// result.
func (i *CSVIngestor) Ingest(ctx context.Context, path string, c *Config) (*Table, error) {
	c.Logger().Info("ingesting csv", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "reading header from %s", path)
	}

	table := NewTable(header)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading records from %s", path)
	}
	for _, rec := range records {
		if err := table.AppendRow(rec); err != nil {
			return nil, errors.Wrapf(err, "appending record from %s", path)
		}
	}

	return table, nil
}
