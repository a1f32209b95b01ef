package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quill/internal/models/response_models"
	"quill/pkg/markdown"
	"quill/pkg/storage"
	"quill/pkg/utils"
)

const (
	FormatDOCX = "docx"
	FormatTXT  = "txt"
)

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportServiceInterface interface {
	Render(title, content, format string) (*ExportFile, error)
	ExportDocument(ctx context.Context, userID, id uuid.UUID, format string) (*ExportFile, error)
	Archive(ctx context.Context, userID, id uuid.UUID, format string) (*response_models.ArchiveResponse, error)
	OpenArchive(ctx context.Context, userID uuid.UUID, key string) (io.ReadCloser, string, error)

	HTMLToMarkdown(html string) (string, error)
	MarkdownToHTML(md string) string
}

type ExportService struct {
	documents DocumentServiceInterface
	store     storage.Storage
	log       *zap.Logger
}

func NewExportService(documents DocumentServiceInterface, store storage.Storage, log *zap.Logger) ExportServiceInterface {
	return &ExportService{documents: documents, store: store, log: log}
}

// Render produces the downloadable file for markdown content. TXT exports are
// the title, a blank line, then the content with markdown markers removed.
func (s *ExportService) Render(title, content, format string) (*ExportFile, error) {
	title = strings.TrimSpace(title)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTXT:
		body := markdown.PlainText(content)
		if title != "" {
			body = title + "\n\n" + body
		}
		return &ExportFile{
			Filename:    exportFilename(title, FormatTXT),
			ContentType: storage.ContentType(".txt"),
			Data:        []byte(strings.TrimRight(body, "\n") + "\n"),
		}, nil
	case FormatDOCX:
		data, err := markdown.ToDOCX(title, content)
		if err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		return &ExportFile{
			Filename:    exportFilename(title, FormatDOCX),
			ContentType: markdown.DocxContentType,
			Data:        data,
		}, nil
	default:
		return nil, utils.ErrUnsupportedFormat
	}
}

func (s *ExportService) ExportDocument(ctx context.Context, userID, id uuid.UUID, format string) (*ExportFile, error) {
	doc, err := s.documents.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.Render(doc.Title, doc.Content, format)
}

func (s *ExportService) Archive(ctx context.Context, userID, id uuid.UUID, format string) (*response_models.ArchiveResponse, error) {
	file, err := s.ExportDocument(ctx, userID, id, format)
	if err != nil {
		return nil, err
	}

	key, err := s.store.Upload(ctx, userID, file.Filename, bytes.NewReader(file.Data))
	if err != nil {
		s.log.Error("export upload failed", zap.Error(err), zap.String("document_id", id.String()))
		return nil, err
	}

	return &response_models.ArchiveResponse{
		Key:         key,
		Filename:    path.Base(key),
		ContentType: file.ContentType,
		DownloadURL: "/exports/" + key,
	}, nil
}

// OpenArchive streams a stored export back to the user that created it.
func (s *ExportService) OpenArchive(ctx context.Context, userID uuid.UUID, key string) (io.ReadCloser, string, error) {
	key = strings.TrimPrefix(key, "/")
	if !storage.OwnedBy(key, userID) {
		return nil, "", utils.ErrExportNotFound
	}

	rc, err := s.store.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, "", utils.ErrExportNotFound
		}
		return nil, "", err
	}
	return rc, path.Base(key), nil
}

func (s *ExportService) HTMLToMarkdown(html string) (string, error) {
	md, err := markdown.FromHTML(html)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	return md, nil
}

func (s *ExportService) MarkdownToHTML(md string) string {
	return markdown.ToHTML(md)
}

func exportFilename(title, ext string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "document"
	}
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	return name + "." + ext
}
