package tagger

import (
	"math"
	"strings"

	nerval "github.com/jamesainslie/go-nerval"
)

// decode turns per-token class probabilities into entity spans using the
// token character offsets produced by the tokenizer. Tags follow the BIO
// scheme; plain tags without a B-/I- prefix are treated as continuations so
// that adjacent tokens with the same label merge into one span. Tokens whose
// top class is O or falls below the threshold close any open span.
func decode(offsets [][]int, probs [][]float32, labels *LabelMap, threshold float32) []nerval.Span {
	var spans []nerval.Span
	var cur *nerval.Span

	flush := func() {
		if cur != nil {
			spans = append(spans, *cur)
			cur = nil
		}
	}

	for i, row := range probs {
		if i >= len(offsets) {
			break
		}
		off := offsets[i]
		if len(off) != 2 || off[1] <= off[0] {
			// Special or zero-width token, carries no text.
			continue
		}

		cls, p := argmax(row)
		prefix, label := splitTag(labels.Tag(cls))
		if prefix == "O" || p < threshold {
			flush()
			continue
		}

		switch {
		case prefix == "B":
			flush()
			cur = &nerval.Span{Start: off[0], End: off[1], Label: label}
		case cur != nil && cur.Label == label:
			cur.End = off[1]
		default:
			// I- tag without a matching open span starts a new one.
			flush()
			cur = &nerval.Span{Start: off[0], End: off[1], Label: label}
		}
	}
	flush()

	return spans
}

// splitTag separates a BIO tag into its prefix and entity label.
// Plain labels come back with an "I" prefix so adjacent tokens merge.
func splitTag(tag string) (prefix, label string) {
	if tag == "" || tag == "O" {
		return "O", ""
	}
	if rest, ok := strings.CutPrefix(tag, "B-"); ok {
		return "B", rest
	}
	if rest, ok := strings.CutPrefix(tag, "I-"); ok {
		return "I", rest
	}
	return "I", tag
}

// argmax returns the index and value of the largest probability.
func argmax(row []float32) (int, float32) {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	if len(row) == 0 {
		return 0, 0
	}
	return best, row[best]
}

// softmaxRows converts logit vectors to probability vectors in place.
func softmaxRows(logits [][]float32) [][]float32 {
	for _, row := range logits {
		if len(row) == 0 {
			continue
		}
		maxv := row[0]
		for _, v := range row[1:] {
			if v > maxv {
				maxv = v
			}
		}
		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - maxv))
			row[i] = float32(e)
			sum += e
		}
		for i := range row {
			row[i] = float32(float64(row[i]) / sum)
		}
	}
	return logits
}
