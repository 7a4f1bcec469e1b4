package main

import (
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := newRootCommand(buildInfo())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildInfo() (version, date, commit string) {
	version, date, commit = buildVersion, buildDate, buildCommit

	if version == "" {
		version = "N/A"
	}

	if date == "" {
		date = "N/A"
	}

	if commit == "" {
		commit = "N/A"
	}

	return version, date, commit
}
