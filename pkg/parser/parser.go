package parser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"doc-chat-be/pkg/utils"
)

// Chunking parameters for RAG retrieval quality.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// ParseFile extracts text from the file at path based on its extension and
// returns it split into chunks. The extension is passed separately because
// the temp file on disk carries a generated name.
func ParseFile(path string, extension string) ([]string, error) {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))

	var text string
	var err error

	switch ext {
	case "txt", "md":
		text, err = readPlainText(path)
	case "csv":
		text, err = readCSV(path)
	case "pdf":
		text, err = ExtractTextFromPDF(path)
	default:
		return nil, fmt.Errorf("unsupported file type: .%s", ext)
	}
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	return utils.SplitText(text, ChunkSize, ChunkOverlap), nil
}

func readPlainText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readCSV flattens rows into comma-joined lines so the splitter keeps
// records together where possible.
func readCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, row := range rows {
		out.WriteString(strings.Join(row, ", "))
		out.WriteString("\n")
	}
	return out.String(), nil
}
