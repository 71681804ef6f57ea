package analyzer

import (
	"fmt"
	"io"
	"os"

	"github.com/deanrtaylor1/textanalyzer/freq"
	"github.com/deanrtaylor1/textanalyzer/lexer"
)

const (
	// ReportSuffix is appended to the input name to derive the report name.
	ReportSuffix = "_Output.csv"
	// InputSuffixLen is the length of the input file extension stripped
	// before appending ReportSuffix, ".txt" in the legacy layout.
	InputSuffixLen = 4
)

// OutputName derives the report file name from the input file name by
// stripping the fixed length extension and appending the report suffix.
// Names shorter than the extension are kept whole.
func OutputName(fileName string) string {
	if len(fileName) <= InputSuffixLen {
		return fileName + ReportSuffix
	}
	return fileName[:len(fileName)-InputSuffixLen] + ReportSuffix
}

// AnalyzeFile reads a pre-stemmed document, aggregates its stems and writes
// the frequency report next to the input.
func AnalyzeFile(fileName string) error {
	in, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("cannot open input %s: %w", fileName, err)
	}
	defer in.Close()

	stats, err := freq.Ingest(in)
	if err != nil {
		return fmt.Errorf("error ingesting %s: %w", fileName, err)
	}

	out, err := os.Create(OutputName(fileName))
	if err != nil {
		return fmt.Errorf("cannot write output for %s: %w", fileName, err)
	}

	if err := freq.WriteReport(out, freq.Rank(stats), stats, freq.DefaultTopN); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// AnalyzeContent stems raw text with the lexer and writes the frequency
// report to w. This is the path for inputs that are not pre-stemmed, like
// crawled pages or ad hoc api requests.
func AnalyzeContent(content string, w io.Writer) error {
	stats := freq.IngestTokens(lexer.StemContent(content))
	return freq.WriteReport(w, freq.Rank(stats), stats, freq.DefaultTopN)
}
