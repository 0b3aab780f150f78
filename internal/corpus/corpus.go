// Package corpus loads evaluation documents and runs a recognizer over them.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	nerval "github.com/jamesainslie/go-nerval"
	"github.com/jamesainslie/go-nerval/extract"
)

// Document pairs one extracted text with its gold annotations.
type Document struct {
	ID   string // document filename without extension
	Path string
	Text string
	Gold []nerval.Span
}

// LoadDocument extracts the document text and loads its gold annotations,
// validating every gold span against the extracted text. A document whose
// annotations do not fit its text is rejected here, before any evaluation.
func LoadDocument(docPath, annPath string) (*Document, error) {
	text, err := extract.Text(docPath)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", docPath, err)
	}

	gold, err := nerval.LoadAnnotations(annPath)
	if err != nil {
		return nil, err
	}
	if err := nerval.ValidateSpans(gold, len(text)); err != nil {
		return nil, fmt.Errorf("%s: %w", annPath, err)
	}

	base := filepath.Base(docPath)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	return &Document{
		ID:   id,
		Path: docPath,
		Text: text,
		Gold: gold,
	}, nil
}

// LoadCorpus loads every supported document in dir, pairing each with a
// sibling .json annotation file. A document without annotations is an error;
// files that are neither documents nor annotations are skipped.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || !extract.Supported(entry.Name()) {
			continue
		}

		docPath := filepath.Join(dir, entry.Name())
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		annPath := filepath.Join(dir, base+".json")
		if _, err := os.Stat(annPath); err != nil {
			return nil, fmt.Errorf("document %s has no annotation file %s", entry.Name(), base+".json")
		}

		doc, err := LoadDocument(docPath, annPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
