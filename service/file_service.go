package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adityapawar327/ongc-assistant-be/database"
	"github.com/adityapawar327/ongc-assistant-be/types"
	"github.com/adityapawar327/ongc-assistant-be/utils"
)

// FileService owns the upload directory and the ingest pipeline:
// save, extract, chunk, index.
type FileService struct {
	uploadDir string
	extractor TextExtractor
	chunker   *Chunker
	store     database.VectorStore
}

func NewFileService(uploadDir string, extractor TextExtractor, chunker *Chunker, store database.VectorStore) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir: uploadDir,
		extractor: extractor,
		chunker:   chunker,
		store:     store,
	}
}

// IngestUpload stores one uploaded file and indexes its content,
// returning the number of chunks added.
func (s *FileService) IngestUpload(ctx context.Context, header *multipart.FileHeader) (int, error) {
	storedPath, err := s.saveUpload(header)
	if err != nil {
		return 0, err
	}
	return s.ingest(ctx, storedPath, header.Filename)
}

// IngestFile indexes a file already on disk (the CLI ingest path),
// copying it into the upload directory first.
func (s *FileService) IngestFile(ctx context.Context, sourcePath string) (int, error) {
	storedPath, err := utils.CopyFileWithTimestamp(sourcePath, s.uploadDir)
	if err != nil {
		return 0, err
	}
	return s.ingest(ctx, storedPath, filepath.Base(sourcePath))
}

func (s *FileService) ingest(ctx context.Context, storedPath, filename string) (int, error) {
	documents, err := s.extractor.Extract(storedPath, filename)
	if err != nil {
		return 0, err
	}
	return s.IngestDocuments(ctx, documents)
}

// IngestDocuments chunks already-extracted documents and adds them to
// the index.
func (s *FileService) IngestDocuments(ctx context.Context, documents []types.Document) (int, error) {
	chunks := s.chunker.Chunk(documents)
	if len(chunks) == 0 {
		return 0, nil
	}
	added, err := s.store.Add(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to index chunks: %w", err)
	}
	return added, nil
}

// ListSources reports what is currently indexed, per source document.
func (s *FileService) ListSources(ctx context.Context) ([]types.IndexedSource, error) {
	return s.store.ListSources(ctx)
}

// ClearAll empties the index and deletes the stored files.
func (s *FileService) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			os.Remove(filepath.Join(s.uploadDir, entry.Name()))
		}
	}
	return nil
}

// UploadDir exposes the storage directory for the file-serving
// handler.
func (s *FileService) UploadDir() string {
	return s.uploadDir
}

func (s *FileService) saveUpload(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	base := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	filename := sanitizeFilename(fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext))

	storedPath := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return storedPath, nil
}

func sanitizeFilename(filename string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}
