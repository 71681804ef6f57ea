package freq

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestIngest(t *testing.T) {
	stats, err := Ingest(strings.NewReader("a b a\nc b a"))
	if err != nil {
		t.Fatalf("Ingest() returned error: %v", err)
	}

	expectedFreq := TermFreq{"a": 3, "b": 2, "c": 1}
	if !reflect.DeepEqual(stats.Freq, expectedFreq) {
		t.Errorf("Ingest().Freq == %v, want %v", stats.Freq, expectedFreq)
	}

	if stats.TotalCount != 6 {
		t.Errorf("Ingest().TotalCount == %d, want 6", stats.TotalCount)
	}

	expectedGrowth := []int{1, 2, 4}
	if !reflect.DeepEqual(stats.Growth, expectedGrowth) {
		t.Errorf("Ingest().Growth == %v, want %v", stats.Growth, expectedGrowth)
	}
}

func TestIngestEmpty(t *testing.T) {
	stats, err := Ingest(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Ingest() returned error: %v", err)
	}

	if stats.TotalCount != 0 {
		t.Errorf("Ingest().TotalCount == %d, want 0", stats.TotalCount)
	}
	if len(stats.Freq) != 0 {
		t.Errorf("Ingest().Freq == %v, want empty", stats.Freq)
	}
	if len(stats.Growth) != 0 {
		t.Errorf("Ingest().Growth == %v, want empty", stats.Growth)
	}
	if entries := Rank(stats); len(entries) != 0 {
		t.Errorf("Rank() on empty stats == %v, want empty", entries)
	}
}

func TestIngestTokensMatchesIngest(t *testing.T) {
	tokens := []string{"run", "jump", "run", "walk", "jump", "run"}

	fromTokens := IngestTokens(tokens)
	fromReader, err := Ingest(strings.NewReader(strings.Join(tokens, " ")))
	if err != nil {
		t.Fatalf("Ingest() returned error: %v", err)
	}

	if !reflect.DeepEqual(fromTokens, fromReader) {
		t.Errorf("IngestTokens() == %+v, want %+v", fromTokens, fromReader)
	}
}

func TestStatsInvariants(t *testing.T) {
	tokens := []string{"x", "y", "x", "z", "z", "x", "w", "y", "x"}
	stats := IngestTokens(tokens)

	sum := 0
	for _, count := range stats.Freq {
		sum += count
	}
	if sum != stats.TotalCount {
		t.Errorf("sum of frequencies == %d, want TotalCount %d", sum, stats.TotalCount)
	}

	if len(stats.Growth) != len(stats.Freq) {
		t.Errorf("len(Growth) == %d, want unique stem count %d", len(stats.Growth), len(stats.Freq))
	}

	for i := 1; i < len(stats.Growth); i++ {
		if stats.Growth[i] <= stats.Growth[i-1] {
			t.Errorf("Growth is not strictly increasing at index %d: %v", i, stats.Growth)
		}
	}
}

func TestRank(t *testing.T) {
	stats := IngestTokens([]string{"a", "b", "a", "c", "b", "a"})
	entries := Rank(stats)

	expected := []RankedEntry{
		{Stem: "a", Frequency: 3, Rank: 1, Probability: 0.5},
		{Stem: "b", Frequency: 2, Rank: 2, Probability: float32(2) / float32(6)},
		{Stem: "c", Frequency: 1, Rank: 3, Probability: float32(1) / float32(6)},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("Rank() == %v, want %v", entries, expected)
	}
}

func TestRankSortedAndSumsToTotal(t *testing.T) {
	// Ties exist on purpose; only the non-increasing order is asserted, the
	// order among equal frequencies is not guaranteed.
	stats := IngestTokens([]string{"a", "a", "b", "b", "c", "d", "e", "e", "e"})
	entries := Rank(stats)

	sum := 0
	for i, e := range entries {
		sum += e.Frequency
		if e.Rank != i+1 {
			t.Errorf("entry %d has rank %d, want %d", i, e.Rank, i+1)
		}
		if i > 0 && entries[i-1].Frequency < e.Frequency {
			t.Errorf("entries not sorted by frequency descending at index %d: %v", i, entries)
		}
		expectedProb := float32(e.Frequency) / float32(stats.TotalCount)
		if e.Probability != expectedProb {
			t.Errorf("entry %q has probability %v, want %v", e.Stem, e.Probability, expectedProb)
		}
	}
	if sum != stats.TotalCount {
		t.Errorf("sum of ranked frequencies == %d, want %d", sum, stats.TotalCount)
	}
}

func TestWriteReport(t *testing.T) {
	stats := IngestTokens([]string{"a", "b", "a", "c", "b", "a"})
	entries := Rank(stats)

	var buf bytes.Buffer
	if err := WriteReport(&buf, entries, stats, DefaultTopN); err != nil {
		t.Fatalf("WriteReport() returned error: %v", err)
	}

	expected := "\"Stem\", \"Frequency\", \"Rank\", \"Probability\"\n" +
		"\"a\", 3, 1, 0.5\n" +
		fmt.Sprintf("\"b\", 2, 2, %v\n", float32(2)/float32(6)) +
		fmt.Sprintf("\"c\", 1, 3, %v\n", float32(1)/float32(6)) +
		"\n" +
		"\"Total World Count\", \"Unique World Count\"\n" +
		"1, 1\n" +
		"2, 2\n" +
		"4, 3\n"
	if buf.String() != expected {
		t.Errorf("WriteReport() == %q, want %q", buf.String(), expected)
	}
}

func TestWriteReportTopNCutoff(t *testing.T) {
	tokens := make([]string, 0, 51)
	for i := 0; i < 51; i++ {
		tokens = append(tokens, fmt.Sprintf("stem%d", i))
	}
	stats := IngestTokens(tokens)
	entries := Rank(stats)

	var buf bytes.Buffer
	if err := WriteReport(&buf, entries, stats, DefaultTopN); err != nil {
		t.Fatalf("WriteReport() returned error: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	topRows := 0
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		topRows++
	}
	if topRows != DefaultTopN {
		t.Errorf("top section has %d rows, want %d", topRows, DefaultTopN)
	}

	growthRows := 0
	for _, line := range lines {
		if line != "" && line[0] != '"' {
			growthRows++
		}
	}
	if growthRows != 51 {
		t.Errorf("growth section has %d rows, want 51", growthRows)
	}
}

func TestWriteReportEmpty(t *testing.T) {
	stats := NewStats()
	var buf bytes.Buffer
	if err := WriteReport(&buf, Rank(stats), stats, DefaultTopN); err != nil {
		t.Fatalf("WriteReport() returned error: %v", err)
	}

	expected := "\"Stem\", \"Frequency\", \"Rank\", \"Probability\"\n" +
		"\n" +
		"\"Total World Count\", \"Unique World Count\"\n"
	if buf.String() != expected {
		t.Errorf("WriteReport() == %q, want %q", buf.String(), expected)
	}
}
