// Package nerval scores a named-entity recognizer's predictions against
// human gold annotations at the span level.
//
// Spans are exact-match: a prediction counts as a true positive only when an
// unconsumed gold span with identical character offsets and label remains.
// Matching uses multiset semantics, so duplicate annotations are credited or
// penalized per occurrence rather than collapsed.
//
// # Quick Start
//
//	text, err := extract.Text("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gold, err := nerval.LoadAnnotations("report.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := engine.Recognize(ctx, text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := nerval.Evaluate(text, gold, pred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.Render(os.Stdout, text)
//
// # Engines
//
// Any Recognizer can be evaluated. The tagger package runs ONNX
// token-classification models; the prosetag package wraps the prose
// statistical tagger and needs no model files.
//
// # Thread Safety
//
// Evaluate is a pure function over its inputs; evaluating many documents
// concurrently requires no locking.
package nerval
