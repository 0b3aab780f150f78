package extract

import (
	"fmt"
	"os"
)

// fromText reads a plain-text document.
func fromText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return normalize(string(data)), nil
}
