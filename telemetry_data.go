package ingest

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of an archive ingestion.
type TelemetryData struct {
	// ExtractedFiles is the number of files extracted from the archive
	ExtractedFiles int64 `json:"extracted_files"`

	// IngestedFiles is the number of files that produced a table
	IngestedFiles int64 `json:"ingested_files"`

	// IngestedRows is the number of rows in the concatenated result
	IngestedRows int64 `json:"ingested_rows"`

	// IngestedType is the type of the ingested file
	IngestedType string `json:"ingested_type"`

	// IngestionDuration is the time it took to ingest the archive
	IngestionDuration time.Duration `json:"ingestion_duration"`

	// IngestionErrors is the number of errors during ingestion
	IngestionErrors int64 `json:"ingestion_errors"`

	// LastIngestionError is the last error during ingestion
	LastIngestionError error `json:"last_ingestion_error"`

	// LastUnsupportedFile is the last skipped unsupported file
	LastUnsupportedFile string `json:"last_unsupported_file"`

	// UnsupportedFiles is the number of skipped unsupported files
	UnsupportedFiles int64 `json:"unsupported_files"`
}

// String returns a string representation of [TelemetryData].
func (td TelemetryData) String() string {
	b, _ := json.Marshal(td)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (td TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if td.LastIngestionError != nil {
		lastError = td.LastIngestionError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastIngestionError string `json:"last_ingestion_error"`
		*Alias
	}{
		LastIngestionError: lastError,
		Alias:              (*Alias)(&td),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after an ingestion has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)
