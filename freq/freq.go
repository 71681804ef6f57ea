package freq

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// DefaultTopN is the number of ranked stems included in the top section of a report.
const DefaultTopN = 50

type TermFreq map[string]int

// Stats holds the aggregated counts for a single document.
type Stats struct {
	Freq TermFreq
	// Growth records the total word count at the moment each new unique stem
	// was first seen, in first-seen order. Entry i belongs to the i+1th
	// unique stem, so the series is strictly increasing.
	Growth     []int
	TotalCount int
}

type RankedEntry struct {
	Stem        string  `json:"stem"`
	Frequency   int     `json:"frequency"`
	Rank        int     `json:"rank"`
	Probability float32 `json:"probability"`
}

// This function returns an empty Stats ready to ingest stems
func NewStats() *Stats {
	return &Stats{
		Freq: make(TermFreq),
	}
}

// Add records a single stem. Any value is a valid stem, including the empty string.
func (s *Stats) Add(stem string) {
	s.TotalCount += 1
	if _, ok := s.Freq[stem]; !ok {
		s.Growth = append(s.Growth, s.TotalCount)
	}
	s.Freq[stem] += 1
}

// Ingest reads whitespace delimited stems from r and aggregates them into a
// Stats. Empty input is legal and produces an empty Stats.
func Ingest(r io.Reader) (*Stats, error) {
	stats := NewStats()

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		stats.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return stats, nil
}

// IngestTokens aggregates an in memory token slice into a Stats.
func IngestTokens(tokens []string) *Stats {
	stats := NewStats()
	for _, token := range tokens {
		stats.Add(token)
	}
	return stats
}

// Rank converts the frequency table to a slice sorted by frequency descending
// and assigns each entry its 1-based rank and its probability (frequency over
// total word count). The order of stems with equal frequency is not
// guaranteed and callers must not rely on it.
func Rank(stats *Stats) []RankedEntry {
	entries := make([]RankedEntry, 0, len(stats.Freq))
	for stem, count := range stats.Freq {
		entries = append(entries, RankedEntry{Stem: stem, Frequency: count})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Frequency > entries[j].Frequency })

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Probability = float32(entries[i].Frequency) / float32(stats.TotalCount)
	}

	return entries
}

// WriteReport emits the two section report: the top ranked stems followed by
// the unique word growth series. The column labels, the comma-space
// separators and the bare quoting all match the original analyzer's output
// byte for byte, including the "World" labels, so existing reports stay
// comparable. Stems are not csv-escaped.
func WriteReport(w io.Writer, entries []RankedEntry, stats *Stats, topN int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\"Stem\", \"Frequency\", \"Rank\", \"Probability\"\n")
	for i := 0; i < len(entries) && i < topN; i++ {
		e := entries[i]
		fmt.Fprintf(bw, "\"%s\", %d, %d, %v\n", e.Stem, e.Frequency, e.Rank, e.Probability)
	}

	fmt.Fprintf(bw, "\n\"Total World Count\", \"Unique World Count\"\n")
	for i, totalAtFirstSight := range stats.Growth {
		fmt.Fprintf(bw, "%d, %d\n", totalAtFirstSight, i+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
