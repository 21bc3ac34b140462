// Package rank implements the BM25 ranker and the category reweighter
// applied to its output: three named tuning modes, a min-score-ratio
// filter relative to the top hit, and an ascending-chunkId tie-break for
// equal scores.
package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Mode selects the BM25 tuning parameters and post-scoring filter ratio.
type Mode string

const (
	ModeBroad    Mode = "broad"
	ModeBalanced Mode = "balanced"
	ModePrecise  Mode = "precise"
)

// Params holds the per-mode BM25 tuning values.
type Params struct {
	K1            float64
	B             float64
	MinScoreRatio float64
}

var modeParams = map[Mode]Params{
	ModeBroad:    {K1: 1.0, B: 0.5, MinScoreRatio: 0.1},
	ModeBalanced: {K1: 1.2, B: 0.75, MinScoreRatio: 0.5},
	ModePrecise:  {K1: 1.5, B: 0.9, MinScoreRatio: 1.0},
}

// ParamsFor returns the tuning values for mode, defaulting to balanced for
// an unrecognized mode.
func ParamsFor(mode Mode) Params {
	if p, ok := modeParams[mode]; ok {
		return p
	}
	return modeParams[ModeBalanced]
}

// Document is the minimal per-chunk view the ranker needs: an external
// identifier pair and its tokenized content.
type Document struct {
	ID      uint32
	ChunkID uint32
	Text    string
}

// Result is a single scored hit.
type Result struct {
	ID      uint32
	ChunkID uint32
	Score   float64
}

var tokenRe = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// Tokenize splits text into lowercased word/code tokens deterministically.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Index is a BM25 index built once over a fixed corpus and safe to query
// concurrently thereafter (it is never mutated after construction).
type Index struct {
	docs     []Document
	tokens   [][]string
	docFreq  map[string]int
	avgLen   float64
}

// NewIndex tokenizes and indexes docs for repeated BM25 queries.
func NewIndex(docs []Document) *Index {
	idx := &Index{
		docs:    docs,
		tokens:  make([][]string, len(docs)),
		docFreq: make(map[string]int),
	}

	var totalLen float64
	for i, d := range docs {
		terms := Tokenize(d.Text)
		idx.tokens[i] = terms
		totalLen += float64(len(terms))

		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			idx.docFreq[term]++
		}
	}
	if len(docs) > 0 {
		idx.avgLen = totalLen / float64(len(docs))
	}

	return idx
}

// Score runs a BM25 query in the given mode, filters results below
// maxScore*ratio, and sorts by descending score with ascending chunkId as
// the tie-break.
func (idx *Index) Score(query []string, mode Mode) []Result {
	if len(idx.docs) == 0 || len(query) == 0 {
		return nil
	}

	params := ParamsFor(mode)

	queryFreq := make(map[string]int, len(query))
	for _, t := range query {
		queryFreq[strings.ToLower(t)]++
	}

	n := float64(len(idx.docs))
	results := make([]Result, 0, len(idx.docs))

	for i, d := range idx.docs {
		terms := idx.tokens[i]
		docLen := float64(len(terms))

		tf := make(map[string]int, len(terms))
		for _, term := range terms {
			tf[term]++
		}

		var score float64
		for term, qf := range queryFreq {
			df := float64(idx.docFreq[term])
			if df == 0 {
				continue
			}
			idfVal := idf(n, df)
			tfVal := saturatedTF(float64(tf[term]), docLen, idx.avgLen, params.K1, params.B)
			score += idfVal * tfVal * float64(qf)
		}

		if score > 0 {
			results = append(results, Result{ID: d.ID, ChunkID: d.ChunkID, Score: score})
		}
	}

	if len(results) == 0 {
		return nil
	}

	sortResults(results)

	maxScore := results[0].Score
	minScore := maxScore * params.MinScoreRatio
	filtered := results[:0:0]
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// idf is the clamped BM25 inverse document frequency.
func idf(n, df float64) float64 {
	v := math.Log((n-df+0.5)/(df+0.5) + 1)
	if v < 0 {
		return 0
	}
	return v
}

// saturatedTF is the standard BM25 term-frequency saturation component.
func saturatedTF(termCount, docLen, avgLen, k1, b float64) float64 {
	if avgLen == 0 {
		avgLen = docLen
	}
	denom := termCount + k1*(1-b+b*(docLen/avgLen))
	if denom == 0 {
		return 0
	}
	return (termCount * (k1 + 1)) / denom
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkID < results[j].ChunkID
	})
}
