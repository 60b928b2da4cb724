package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return eris.Wrapf(err, "failed to open %s", outputFile)
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquet writes rows through a Parquet writer. Parquet needs a real file.
func writeParquet(outputFile string, write func(path string) error) error {
	if outputFile == "" {
		return eris.New("parquet output requires --output-file")
	}
	if err := write(outputFile); err != nil {
		return eris.Wrap(err, "error writing Parquet output")
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return eris.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return eris.Wrap(err, "failed to write CSV header")
	}
	return writeRows(csvWriter)
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, intFmt
}

// formatWindow renders a timing window as start→end dates.
func formatWindow(w schema.TimingWindow) string {
	return fmt.Sprintf("%s→%s", w.Start.Format(dateFormat), w.End.Format(dateFormat))
}

// joinReasons joins reasons with the CSV list separator.
func joinReasons(reasons []schema.Reason) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return joinStrings(parts)
}

// writeSummary prints the footer shown under every result table.
func writeSummary(w io.Writer, noun string, count int, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Showing %d %s\n", count, noun); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Decided in %v with %d workers. Analysis backend: %s\n",
		duration.Round(time.Millisecond), cfg.Workers, cfg.AnalysisBackend)
	return err
}

// joinStrings joins values with the CSV list separator.
func joinStrings(values []string) string {
	return strings.Join(values, "|")
}
