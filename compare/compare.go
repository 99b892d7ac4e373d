// Package compare measures how similar two texts are and reports where
// they differ.
//
// Compare aligns the texts character by character and produces a
// similarity percentage, per-text statistics, and a sequence of aligned
// segments classified as equal, deleted, inserted, or modified.
// UnifiedDiff renders a line-oriented unified diff of the same inputs.
// Comparison is a read-only analysis, not a conversion; it lives outside
// the registry because it takes two inputs and has no target format.
package compare

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// SegmentOp classifies one aligned span of the two texts.
type SegmentOp string

const (
	// OpEqual marks a span present in both texts.
	OpEqual SegmentOp = "equal"
	// OpDeleted marks a span present only in the source text.
	OpDeleted SegmentOp = "deleted"
	// OpInserted marks a span present only in the target text.
	OpInserted SegmentOp = "inserted"
	// OpModified marks a span that was replaced between the texts.
	OpModified SegmentOp = "modified"
)

// Segment is one aligned span of the comparison. Source is empty for
// insertions and Target is empty for deletions.
type Segment struct {
	// Op classifies the span
	Op SegmentOp
	// Source is the span's text in the source document
	Source string
	// Target is the span's text in the target document
	Target string
}

// TextStats summarizes one side of a comparison.
type TextStats struct {
	// Chars is the number of characters (runes, not bytes)
	Chars int
	// Words is the number of whitespace-separated words
	Words int
	// Lines is the number of lines; an empty text has zero
	Lines int
}

// Result contains the outcome of comparing two texts.
type Result struct {
	// Similarity is a percentage from 0 to 100, rounded to two
	// decimals. Two empty texts are 100% similar.
	Similarity float64
	// Identical is true when the texts match exactly
	Identical bool
	// Segments is the aligned spans in document order
	Segments []Segment
	// SourceStats describes the source text
	SourceStats TextStats
	// TargetStats describes the target text
	TargetStats TextStats
}

// Comparator performs text comparison.
type Comparator struct {
	// Context is the number of unchanged lines shown around each
	// hunk in UnifiedDiff output
	Context int
}

// New creates a Comparator with default settings.
func New() *Comparator {
	return &Comparator{Context: 3}
}

// Compare is a convenience function using default settings.
func Compare(source, target string) *Result {
	return New().Compare(source, target)
}

// Compare aligns source and target character by character.
func (c *Comparator) Compare(source, target string) *Result {
	a := splitRunes(source)
	b := splitRunes(target)
	m := difflib.NewMatcher(a, b)

	result := &Result{
		Similarity:  roundPercent(m.Ratio()),
		Identical:   source == target,
		SourceStats: statsFor(source),
		TargetStats: statsFor(target),
	}

	for _, op := range m.GetOpCodes() {
		seg := Segment{
			Source: strings.Join(a[op.I1:op.I2], ""),
			Target: strings.Join(b[op.J1:op.J2], ""),
		}
		switch op.Tag {
		case 'e':
			seg.Op = OpEqual
		case 'd':
			seg.Op = OpDeleted
		case 'i':
			seg.Op = OpInserted
		case 'r':
			seg.Op = OpModified
		}
		result.Segments = append(result.Segments, seg)
	}
	return result
}

// UnifiedDiff renders a line-oriented unified diff of the two texts,
// headed "source" and "target". Identical texts produce an empty string.
func (c *Comparator) UnifiedDiff(source, target string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(source),
		B:        difflib.SplitLines(target),
		FromFile: "source",
		ToFile:   "target",
		Context:  c.Context,
	})
}

// splitRunes splits a string into per-rune elements for the matcher.
func splitRunes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}

func roundPercent(ratio float64) float64 {
	return math.Round(ratio*10000) / 100
}

func statsFor(s string) TextStats {
	stats := TextStats{
		Chars: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		stats.Lines = strings.Count(s, "\n")
		if !strings.HasSuffix(s, "\n") {
			stats.Lines++
		}
	}
	return stats
}
