// Package ingest normalizes files into an in-memory tabular structure.
//
// An [Ingestor] is selected for a file based on its extension; archive files
// are expanded to disk and their contents ingested recursively, with all
// resulting tables concatenated row-wise into a single [Table]. Files with
// an extension that has no registered ingestor are skipped silently.
//
// Configuration is done using the [Config], which can be used to set the
// logger, the telemetry hook and the limits applied while expanding
// archives. The collection of [TelemetryData] happens during archive
// ingestion and is delivered through the configured [TelemetryHook].
package ingest
