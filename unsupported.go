package ingest

import "context"

// UnsupportedIngestor is the explicit no-op variant returned by
// [IngestorFor] whenever a file extension has no registry entry. It is a
// distinct type instead of a nil [Ingestor], so callers can branch on it.
type UnsupportedIngestor struct{}

// Ingest ignores the file at path and returns a nil table with a nil error.
// It never fails.
func (i *UnsupportedIngestor) Ingest(ctx context.Context, path string, c *Config) (*Table, error) {
	c.Logger().Debug("skipping unsupported file", "path", path)
	return nil, nil
}
