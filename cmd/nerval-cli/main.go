package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	nerval "github.com/jamesainslie/go-nerval"
	"github.com/jamesainslie/go-nerval/extract"
	"github.com/jamesainslie/go-nerval/prosetag"
	"github.com/jamesainslie/go-nerval/tagger"
)

func main() {
	// .env provides defaults for the model flags; a missing file is fine.
	_ = godotenv.Load()

	var (
		docPath       = flag.String("doc", "", "Path to document file (.txt, .pdf, .html) (required)")
		goldPath      = flag.String("gold", "", "Path to gold annotation JSON file (required)")
		engine        = flag.String("engine", "onnx", "NER engine: onnx or prose")
		modelPath     = flag.String("model", os.Getenv("NERVAL_MODEL"), "Path to ONNX model file (onnx engine)")
		tokenizerPath = flag.String("tokenizer", os.Getenv("NERVAL_TOKENIZER"), "Path to HuggingFace tokenizer.json (onnx engine)")
		labelsPath    = flag.String("labels", os.Getenv("NERVAL_LABELS"), "Path to label map JSON (onnx engine)")
		threshold     = flag.Float64("threshold", 0.5, "Confidence threshold (onnx engine)")
		verbose       = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *docPath == "" || *goldPath == "" {
		fmt.Fprintln(os.Stderr, "error: -doc and -gold required")
		flag.Usage()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	rec, cleanup, err := buildEngine(*engine, *modelPath, *tokenizerPath, *labelsPath, float32(*threshold), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s engine: %v\n", *engine, err)
		os.Exit(1)
	}
	defer cleanup()

	text, err := extract.Text(*docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error extracting document: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("extracted document", "path", *docPath, "chars", len(text))

	gold, err := nerval.LoadAnnotations(*goldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading gold spans: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("loaded gold spans", "path", *goldPath, "count", len(gold))

	pred, err := rec.Recognize(context.Background(), text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running inference: %v\n", err)
		os.Exit(1)
	}

	report, err := nerval.Evaluate(text, gold, pred)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating: %v\n", err)
		os.Exit(1)
	}

	if err := report.Render(os.Stdout, text); err != nil {
		fmt.Fprintf(os.Stderr, "error rendering report: %v\n", err)
		os.Exit(1)
	}
}

// buildEngine constructs the requested recognizer and a cleanup func.
func buildEngine(engine, modelPath, tokenizerPath, labelsPath string, threshold float32, logger *slog.Logger) (nerval.Recognizer, func(), error) {
	switch engine {
	case "onnx":
		if modelPath == "" || tokenizerPath == "" || labelsPath == "" {
			return nil, nil, fmt.Errorf("-model, -tokenizer and -labels required for the onnx engine")
		}
		tg, err := tagger.New(modelPath, tokenizerPath, labelsPath,
			tagger.WithThreshold(threshold),
			tagger.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return tg, func() { _ = tg.Close() }, nil

	case "prose":
		return prosetag.New(prosetag.WithLogger(logger)), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown engine %q", engine)
	}
}
