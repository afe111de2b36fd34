package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizgen-platform/internal/config"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// FileType tags the extraction strategy for an uploaded document.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeTXT   FileType = "txt"
	FileTypeCSV   FileType = "csv"
	FileTypeJSON  FileType = "json"
	FileTypeExcel FileType = "xlsx"
	FileTypeDOCX  FileType = "docx"
	FileTypeAudio FileType = "audio"
)

// audioExtensions are handled by the transcription service rather than by
// extension-to-type matching.
var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".mp4": true,
	".m4a": true,
}

// InferFileType resolves the extraction strategy from the path's extension.
// Unrecognized extensions are an input error, never a silent default.
func InferFileType(path string) (FileType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", fmt.Errorf("file %q has no extension", path)
	}
	if audioExtensions[ext] {
		return FileTypeAudio, nil
	}

	switch FileType(strings.TrimPrefix(ext, ".")) {
	case FileTypePDF:
		return FileTypePDF, nil
	case FileTypeTXT:
		return FileTypeTXT, nil
	case FileTypeCSV:
		return FileTypeCSV, nil
	case FileTypeJSON:
		return FileTypeJSON, nil
	case FileTypeExcel:
		return FileTypeExcel, nil
	case FileTypeDOCX:
		return FileTypeDOCX, nil
	}
	return "", fmt.Errorf("unsupported file type %q", ext)
}

// TextExtractor returns the raw text of a document as a single string.
type TextExtractor struct {
	config     *config.Config
	transcribe *TranscribeClient
}

// NewTextExtractor creates a new text extractor.
func NewTextExtractor(cfg *config.Config) *TextExtractor {
	return &TextExtractor{
		config:     cfg,
		transcribe: NewTranscribeClient(cfg),
	}
}

// ExtractText extracts the full text of the file at path using the strategy
// for the given type.
func (e *TextExtractor) ExtractText(ctx context.Context, path string, fileType FileType) (string, error) {
	switch fileType {
	case FileTypePDF:
		return e.extractPDF(path)
	case FileTypeTXT, FileTypeCSV, FileTypeJSON:
		// Plain passthrough: the chunker works on raw text
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case FileTypeExcel:
		return e.extractExcel(path)
	case FileTypeAudio:
		return e.transcribe.Transcribe(ctx, path)
	case FileTypeDOCX:
		return "", fmt.Errorf("docx extraction not implemented")
	}
	return "", fmt.Errorf("unsupported file type %q", fileType)
}

// extractPDF concatenates per-page plain text in page order.
func (e *TextExtractor) extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// extractExcel flattens all sheets row-major, cells tab-separated.
func (e *TextExtractor) extractExcel(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}
