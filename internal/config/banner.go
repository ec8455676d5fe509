package config

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and version information.
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info(name, log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo logs information about the loaded ROM.
func PrintInfo(logger *log.Logger, file string, rom []byte, quiet bool) {
	if quiet {
		return
	}

	logger.Info("Loaded CHIP-8 ROM",
		log.String("file", file),
		log.Int("size", len(rom)))
}
