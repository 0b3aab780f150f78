package nerval

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes the human-readable evaluation report. The text must be the
// reference string the spans were computed against; it is only used to quote
// the covered substrings. Layout is presentation, not contract: callers that
// need the underlying data should read the Report fields directly.
func (r *Report) Render(w io.Writer, text string) error {
	fmt.Fprintln(w, "=== Entity outcomes (reading order) ===")
	for _, o := range r.Outcomes {
		fmt.Fprintf(w, "%-2s  [%6d, %-6d]  %q  (%s)\n",
			o.Status, o.Span.Start, o.Span.End, o.Span.Text(text), o.Span.Label)
	}
	for _, m := range r.Missed {
		fmt.Fprintf(w, "FN  [%6d, %-6d]  %q  (%s)\n",
			m.Start, m.End, m.Text(text), m.Label)
	}

	fmt.Fprintln(w, "\n=== Scores per label ===")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "label\tprecision\trecall\tf1\tsupport")
	for _, l := range r.Labels() {
		s := r.Scores[l]
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%d\n",
			l, s.Precision, s.Recall, s.F1, r.Support[l])
	}
	fmt.Fprintf(tw, "macro avg\t%.3f\t%.3f\t%.3f\t%d\n",
		r.Macro.Precision, r.Macro.Recall, r.Macro.F1, totalSupport(r.Support))
	fmt.Fprintf(tw, "micro avg\t%.3f\t%.3f\t%.3f\t%d\n",
		r.Micro.Precision, r.Micro.Recall, r.Micro.F1, totalSupport(r.Support))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== Confusion table ===")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	axis := r.Confusion.Axis()
	fmt.Fprint(tw, "")
	for _, l := range axis {
		fmt.Fprintf(tw, "\tP_%s", l)
	}
	fmt.Fprintln(tw)
	for _, t := range axis {
		fmt.Fprintf(tw, "T_%s", t)
		for _, p := range axis {
			fmt.Fprintf(tw, "\t%d", r.Confusion.Count(t, p))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== TP / FP / FN per label ===")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "label\tTP\tFP\tFN")
	for _, l := range r.Labels() {
		c := r.Counts[l]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", l, c.TP, c.FP, c.FN)
	}
	return tw.Flush()
}

func totalSupport(support map[string]int) int {
	total := 0
	for _, n := range support {
		total += n
	}
	return total
}
