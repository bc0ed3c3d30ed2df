package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/tabulardata/go-ingest"
	"github.com/tabulardata/go-ingest/internal/source"
)

// CLI are the cli parameters for the go-ingest binary
type CLI struct {
	Path      string           `arg:"" name:"path" help:"Path to the input file. Local path or s3://bucket/key URL."`
	MaxFiles  int64            `optional:"" default:"1000" help:"Maximum number of files extracted from an archive. (disable check: -1)"`
	Output    string           `short:"o" default:"-" help:"Write the resulting table as CSV to this file. (\"-\" for STDOUT)"`
	Overwrite bool             `short:"O" help:"Overwrite existing files during archive extraction."`
	Telemetry bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after ingestion."`
	Verbose   bool             `short:"v" optional:"" help:"Verbose logging."`
	Version   kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run the entrypoint into go-ingest as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Normalize csv and zip files into a single table"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", "goingest", version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *ingest.TelemetryData) {
		if cli.Telemetry {
			logger.Info("ingestion finished", "telemetry", td)
		}
	}

	// an s3 client is only needed for remote inputs
	var s3client s3iface.S3API
	if source.IsURL(cli.Path) {
		s3client = s3.New(session.Must(session.NewSession()))
	}

	dir, err := os.MkdirTemp("", "goingest-*")
	if err != nil {
		logger.Error("creating download directory failed", "err", err)
		os.Exit(-1)
	}
	defer os.RemoveAll(dir)

	path, err := source.Localize(cli.Path, s3client, dir)
	if err != nil {
		logger.Error("localizing input failed", "path", cli.Path, "err", err)
		os.Exit(-1)
	}

	// process cli params
	config := ingest.NewConfig(
		ingest.WithLogger(logger),
		ingest.WithMaxFiles(cli.MaxFiles),
		ingest.WithOverwrite(cli.Overwrite),
		ingest.WithTelemetryHook(telemetryToLog),
	)

	// ingest input
	table, err := ingest.Ingest(ctx, path, config)
	if err != nil {
		logger.Error("ingestion failed", "path", path, "err", err)
		os.Exit(-1)
	}
	if table == nil {
		logger.Warn("no ingestor for input, nothing to do", "path", path)
		return
	}

	// write result table
	out := os.Stdout
	if cli.Output != "-" {
		if out, err = os.Create(cli.Output); err != nil {
			logger.Error("creating output file failed", "err", err)
			os.Exit(-1)
		}
		defer out.Close()
	}
	if err := table.WriteCSV(out); err != nil {
		logger.Error("writing result failed", "err", err)
		os.Exit(-1)
	}
}
