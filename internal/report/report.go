// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report prints the status of the manually maintained actions data.
// Extraction from the "Tracking ExecOs" PDF reports is not implemented; until
// it is, the report states where the data lives and checks that each data
// file is present and parses.
//
// The output is scraped by downstream tooling, so the banner text and the
// check line format must not change.
package report

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/extract-actions-data/internal/datafile"
)

// Separator is the rule printed under the title.
const Separator = "=================================================="

// DataFiles lists the checked files in report order.
var DataFiles = []string{
	"actions-pushback.json",
	"actions-timeline.json",
}

// Banner is the fixed text printed before the file checks.
var Banner = []string{
	"Extract Actions Data - Placeholder Script",
	Separator,
	"",
	"This script will be implemented to extract executive",
	"actions data from 'Tracking ExecOs' PDF reports.",
	"",
	"For now, data is manually maintained in:",
	"  - data/actions-pushback.json",
	"  - data/actions-timeline.json",
	"",
}

// Reporter writes the status report for one data directory.
type Reporter struct {
	out     io.Writer
	dataDir string
	logger  *zap.Logger
}

// New returns a Reporter that writes to out and checks files under dataDir.
// A nil logger discards log output.
func New(out io.Writer, dataDir string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{out: out, dataDir: dataDir, logger: logger}
}

// Run prints the banner and one line per data file. Missing files are
// reported, not returned as errors. A file that exists but cannot be read or
// parsed stops the run; lines already written stay written.
func (r *Reporter) Run() error {
	for _, line := range Banner {
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return fmt.Errorf("writing banner: %w", err)
		}
	}

	for _, name := range DataFiles {
		res, err := datafile.Inspect(r.dataDir, name)
		if err != nil {
			return err
		}
		r.logger.Debug("Inspected data file",
			zap.String("path", res.Path),
			zap.Bool("exists", res.Exists),
			zap.Int("size", res.Size))

		if _, err := fmt.Fprintln(r.out, FormatResult(res)); err != nil {
			return fmt.Errorf("writing result for %s: %w", name, err)
		}
	}
	return nil
}

// FormatResult renders one check line.
func FormatResult(res datafile.Result) string {
	if !res.Exists {
		return fmt.Sprintf("  [MISSING] %s", res.Name)
	}
	return fmt.Sprintf("  [OK] %s exists (%d bytes)", res.Name, res.Size)
}
