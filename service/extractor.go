package service

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// TextExtractor turns an uploaded file into extracted documents ready
// for chunking. Failures are per-file: an unsupported or unparseable
// file is reported, never aborting a batch.
type TextExtractor interface {
	Extract(filePath, filename string) ([]types.Document, error)
}

// DocumentExtractor handles plain text and CSV natively and shells out
// to poppler (pdfinfo/pdftotext) for PDF files, the same way the CLI
// ingest path always has.
type DocumentExtractor struct{}

func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

func (e *DocumentExtractor) Extract(filePath, filename string) ([]types.Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return e.extractText(filePath, filename)
	case ".csv":
		return e.extractCSV(filePath, filename)
	case ".pdf":
		return e.extractPDF(filePath, filename)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func (e *DocumentExtractor) extractText(filePath, filename string) ([]types.Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return []types.Document{{
		Content: string(content),
		Metadata: types.DocumentMetadata{
			Source: filename,
			Type:   types.DocumentTypeText,
		},
	}}, nil
}

func (e *DocumentExtractor) extractCSV(filePath, filename string) ([]types.Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var content strings.Builder
	content.WriteString("CSV Data:\n\n")
	for _, record := range records {
		content.WriteString(strings.Join(record, " | "))
		content.WriteByte('\n')
	}

	return []types.Document{{
		Content: content.String(),
		Metadata: types.DocumentMetadata{
			Source:   filename,
			Type:     types.DocumentTypeCSV,
			RowCount: len(records),
		},
	}}, nil
}

func (e *DocumentExtractor) extractPDF(filePath, filename string) ([]types.Document, error) {
	pageCount, err := pdfPageCount(filePath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("pdftotext", "-enc", "UTF-8", "-nopgbrk", filePath, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	text := cleanText(out.String())
	if text == "" {
		return nil, fmt.Errorf("no extractable text in %s", filename)
	}

	return []types.Document{{
		Content: text,
		Metadata: types.DocumentMetadata{
			Source:    filename,
			Type:      types.DocumentTypePDF,
			PageCount: pageCount,
		},
	}}, nil
}

var pdfPagesPattern = regexp.MustCompile(`Pages:\s+(\d+)`)

func pdfPageCount(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %v", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pdfPagesPattern.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, replacement := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, replacement)
	}
	return strings.TrimSpace(cleaned)
}
