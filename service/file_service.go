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

	"github.com/google/uuid"
	"github.com/tieubaoca/docstudy-be/repository"
	"github.com/tieubaoca/docstudy-be/types"
)

// FileService turns uploaded text files into ready documents: it
// archives the file, creates the document record and builds its chunks.
// Text extraction from PDFs happens upstream; this service only accepts
// already-extracted text.
type FileService struct {
	uploadDir string
	documents repository.DocumentRepo
	study     *StudyService
}

func NewFileService(
	uploadDir string,
	documents repository.DocumentRepo,
	study *StudyService,
) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir: uploadDir,
		documents: documents,
		study:     study,
	}
}

// UploadDocument handles a multipart text upload end to end and returns
// the new document id with its chunk count.
func (s *FileService) UploadDocument(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader) (*types.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".txt" && ext != ".md" {
		return nil, fmt.Errorf("%w: unsupported file type %s", types.ErrInvalidInput, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	// Keep a copy of the original upload for debugging and re-ingestion.
	filename := fmt.Sprintf("%s_%d%s", sanitizeFilename(title), time.Now().Unix(), ext)
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), data, 0644); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = file.Filename
	}
	return s.IngestText(ctx, title, source, string(data))
}

// IngestText creates a document from already-extracted text and builds
// its chunks. Used by the upload path and the ingest CLI command.
func (s *FileService) IngestText(ctx context.Context, title, source, text string) (*types.UploadResponse, error) {
	doc := &types.Document{
		ID:            uuid.NewString(),
		Title:         title,
		Source:        source,
		ExtractedText: text,
	}
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	count, err := s.study.BuildChunks(ctx, doc.ID, doc.ExtractedText)
	if err != nil {
		return nil, err
	}
	return &types.UploadResponse{
		DocumentID: doc.ID,
		Title:      title,
		ChunkCount: count,
	}, nil
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
