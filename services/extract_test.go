package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quizgen-platform/internal/config"
)

func TestInferFileType(t *testing.T) {
	tests := []struct {
		path string
		want FileType
	}{
		{"notes.pdf", FileTypePDF},
		{"NOTES.PDF", FileTypePDF},
		{"data/readme.txt", FileTypeTXT},
		{"export.csv", FileTypeCSV},
		{"payload.json", FileTypeJSON},
		{"sheet.xlsx", FileTypeExcel},
		{"report.docx", FileTypeDOCX},
		{"lecture.mp3", FileTypeAudio},
		{"lecture.wav", FileTypeAudio},
		{"lecture.mp4", FileTypeAudio},
		{"lecture.m4a", FileTypeAudio},
	}
	for _, tt := range tests {
		got, err := InferFileType(tt.path)
		if err != nil {
			t.Fatalf("InferFileType(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Fatalf("InferFileType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestInferFileTypeRejectsUnknown(t *testing.T) {
	for _, path := range []string{"noextension", "archive.zip", "image.png", "dir/.hidden"} {
		if _, err := InferFileType(path); err == nil {
			t.Fatalf("InferFileType(%q) should fail", path)
		}
	}
}

func TestExtractTextPlainFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := "line one\nline two\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	extractor := NewTextExtractor(&config.Config{})
	got, err := extractor.ExtractText(context.Background(), path, FileTypeTXT)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if got != content {
		t.Fatalf("content altered: %q", got)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	extractor := NewTextExtractor(&config.Config{})
	if _, err := extractor.ExtractText(context.Background(), "/nonexistent/doc.txt", FileTypeTXT); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractTextDocxUnsupported(t *testing.T) {
	extractor := NewTextExtractor(&config.Config{})
	if _, err := extractor.ExtractText(context.Background(), "report.docx", FileTypeDOCX); err == nil {
		t.Fatal("expected error for docx")
	}
}
