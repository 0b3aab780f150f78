package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	nerval "github.com/jamesainslie/go-nerval"
	"github.com/jamesainslie/go-nerval/internal/corpus"
	"github.com/jamesainslie/go-nerval/prosetag"
	"github.com/jamesainslie/go-nerval/tagger"
)

func main() {
	_ = godotenv.Load()

	var (
		corpusDir     = flag.String("corpus", "testdata/corpus", "Directory containing documents and .json annotations")
		engine        = flag.String("engine", "onnx", "NER engine: onnx or prose")
		modelPath     = flag.String("model", os.Getenv("NERVAL_MODEL"), "Path to ONNX model file (onnx engine)")
		tokenizerPath = flag.String("tokenizer", os.Getenv("NERVAL_TOKENIZER"), "Path to HuggingFace tokenizer.json (onnx engine)")
		labelsPath    = flag.String("labels", os.Getenv("NERVAL_LABELS"), "Path to label map JSON (onnx engine)")
		threshold     = flag.Float64("threshold", 0.5, "Confidence threshold (onnx engine)")
		wp            = flag.Float64("wp", 1.0, "Precision weight")
		wr            = flag.Float64("wr", 1.0, "Recall weight")
		sweep         = flag.Bool("sweep", false, "Run confidence threshold sweep (onnx engine only)")
		sweepMin      = flag.Float64("sweep-min", 0.10, "Sweep minimum threshold")
		sweepMax      = flag.Float64("sweep-max", 0.95, "Sweep maximum threshold")
		sweepStep     = flag.Float64("sweep-step", 0.05, "Sweep step size")
	)
	flag.Parse()

	if *engine == "onnx" && (*modelPath == "" || *tokenizerPath == "" || *labelsPath == "") {
		fmt.Fprintln(os.Stderr, "error: -model, -tokenizer and -labels required for the onnx engine")
		flag.Usage()
		os.Exit(1)
	}

	docs, err := corpus.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d documents from %s\n\n", len(docs), *corpusDir)

	cfg := corpus.Config{
		Threshold:       float32(*threshold),
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	ctx := context.Background()

	if *sweep {
		if *engine != "onnx" {
			fmt.Fprintln(os.Stderr, "error: -sweep requires the onnx engine")
			os.Exit(1)
		}
		runSweep(ctx, docs, *modelPath, *tokenizerPath, *labelsPath, cfg,
			float32(*sweepMin), float32(*sweepMax), float32(*sweepStep))
		return
	}

	runSingle(ctx, docs, *engine, *modelPath, *tokenizerPath, *labelsPath, cfg)
}

func runSingle(ctx context.Context, docs []*corpus.Document, engine, modelPath, tokenizerPath, labelsPath string, cfg corpus.Config) {
	var rec nerval.Recognizer
	switch engine {
	case "onnx":
		tg, err := tagger.New(modelPath, tokenizerPath, labelsPath,
			tagger.WithThreshold(cfg.Threshold))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating tagger: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = tg.Close() }()
		rec = tg
	case "prose":
		rec = prosetag.New(prosetag.WithLogger(slog.Default()))
	default:
		fmt.Fprintf(os.Stderr, "unknown engine %q\n", engine)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-8s %-8s %-8s %-12s\n", "Document", "Prec", "Rec", "F1", "TP/FP/FN")
	fmt.Println(strings.Repeat("-", 60))

	var pool corpus.Pool
	for _, doc := range docs {
		rep, err := corpus.EvaluateDocument(ctx, rec, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error evaluating %s: %v\n", doc.ID, err)
			os.Exit(1)
		}
		pool.Add(rep)

		c := rep.MicroCounts
		fmt.Printf("%-20s %-8.2f %-8.2f %-8.2f %d/%d/%d\n",
			doc.ID, rep.Micro.Precision, rep.Micro.Recall, rep.Micro.F1, c.TP, c.FP, c.FN)
	}

	fmt.Println(strings.Repeat("-", 60))
	s := pool.Score()
	fmt.Printf("Pooled: Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		s.Precision, s.Recall, s.F1, cfg.Weighted(s.Precision, s.Recall))
	fmt.Printf("(TP: %d, FP: %d, FN: %d over %d documents)\n",
		pool.Counts.TP, pool.Counts.FP, pool.Counts.FN, pool.Docs)
}

func runSweep(ctx context.Context, docs []*corpus.Document, modelPath, tokenizerPath, labelsPath string, cfg corpus.Config, min, max, step float32) {
	thresholds := corpus.SweepThresholds(min, max, step)

	fmt.Printf("Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	results, err := corpus.Sweep(ctx, docs, modelPath, tokenizerPath, labelsPath, cfg, thresholds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				s := r.Pool.Score()
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, s.Precision, s.Recall, s.F1, r.Weighted)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Weighted)
	}
}
