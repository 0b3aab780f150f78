//go:build ignore

// Process CoNLL-2003 style NER files into benchmark corpus format.
// Each split becomes a plain-text document plus a sibling JSON file with
// gold entity spans as character offsets into that document.
// Usage: go run ./scripts/process-conll.go
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// entity is one gold span: [start, end, label].
type entity struct {
	Start int
	End   int
	Label string
}

func (e entity) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Start, e.End, e.Label})
}

func main() {
	inDir := "testdata/conll"
	outDir := "testdata/corpus"

	splits := map[string]string{
		"train": "eng.train",
		"dev":   "eng.testa",
		"test":  "eng.testb",
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}

	for split, file := range splits {
		inFile := filepath.Join(inDir, file)

		fmt.Printf("Processing %s...\n", split)
		text, entities, err := processCoNLL(inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}

		txtPath := filepath.Join(outDir, split+".txt")
		annPath := filepath.Join(outDir, split+".json")

		if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", txtPath, err)
			continue
		}
		if err := writeAnnotations(annPath, entities); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", annPath, err)
			continue
		}

		fmt.Printf("  -> %s (%d chars, %d entities)\n", txtPath, len(text), len(entities))
	}

	fmt.Println("\nDone! Corpus files created in", outDir)
}

// processCoNLL reads a CoNLL file (one token per line, first column the
// token, last column the BIO tag, blank line between sentences) and
// reconstructs a space-joined document plus character-offset entities.
func processCoNLL(path string) (string, []entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		text     strings.Builder
		entities []entity
		cur      *entity
	)

	flush := func() {
		if cur != nil {
			entities = append(entities, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Blank line or document marker ends any open entity.
		if line == "" || strings.HasPrefix(line, "-DOCSTART-") {
			flush()
			continue
		}

		fields := strings.Fields(line)
		token := fields[0]
		tag := fields[len(fields)-1]

		if text.Len() > 0 {
			text.WriteString(" ")
		}
		start := text.Len()
		text.WriteString(token)
		end := text.Len()

		switch {
		case tag == "O":
			flush()
		case strings.HasPrefix(tag, "B-"):
			flush()
			cur = &entity{Start: start, End: end, Label: tag[2:]}
		case strings.HasPrefix(tag, "I-"):
			if cur != nil && cur.Label == tag[2:] {
				cur.End = end
			} else {
				// Dangling I- tag starts a new entity.
				flush()
				cur = &entity{Start: start, End: end, Label: tag[2:]}
			}
		default:
			flush()
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("scanning file: %w", err)
	}

	return text.String(), entities, nil
}

func writeAnnotations(path string, entities []entity) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string][]entity{"entities": entities})
}
