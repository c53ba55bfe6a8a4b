// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import "strings"

// RunRange records one run's [Start, End) span inside the corpus.
type RunRange struct {
	Start, End int
	Run        TextRun
}

// CorpusIndex is the searchable concatenation of a page's run strings plus
// the offset table mapping corpus spans back to runs. It is derived data:
// rebuilt on every page render, never cached across pages.
type CorpusIndex struct {
	Corpus string
	Ranges []RunRange
}

// BuildCorpus concatenates the runs' whitespace-collapsed text in the
// given order, joining adjacent entries with exactly one space. Runs that
// collapse to the empty string contribute no characters and no range.
func BuildCorpus(runs []TextRun) CorpusIndex {
	var b strings.Builder
	var ranges []RunRange
	for _, run := range runs {
		text := strings.Join(strings.Fields(run.Text), " ")
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(text)
		ranges = append(ranges, RunRange{Start: start, End: b.Len(), Run: run})
	}
	return CorpusIndex{Corpus: b.String(), Ranges: ranges}
}

// RangesIntersecting returns the runs whose corpus spans overlap
// [matchStart, matchEnd).
func (ci CorpusIndex) RangesIntersecting(matchStart, matchEnd int) []RunRange {
	var hits []RunRange
	for _, r := range ci.Ranges {
		if r.End > matchStart && r.Start < matchEnd {
			hits = append(hits, r)
		}
	}
	return hits
}
