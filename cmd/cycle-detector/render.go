package main

import (
	"io"

	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/config"
	"github.com/ritzau/cycle-detector/pkg/output"
)

// render writes reports in the configured format
func render(w io.Writer, format string, reports ...analysis.Report) error {
	if format == config.FormatJSON {
		return output.WriteJSON(w, reports)
	}
	for _, r := range reports {
		output.PrintReport(w, r)
	}
	return nil
}
