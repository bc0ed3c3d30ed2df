package main

import "github.com/tabulardata/go-ingest/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main start go-ingest cli `goingest`
func main() {
	cmd.Run(version, commit, date)
}
