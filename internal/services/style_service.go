package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/pkg/utils"
)

// StyleReporter receives progress for a running style generation.
type StyleReporter interface {
	Progress(percent int, message string)
	Log(message string)
}

type StyleServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, request request_models.GenerateStyleRequest, report StyleReporter) (*response_models.DocumentResponse, error)
}

type StyleService struct {
	llm          utils.CompletionClientInterface
	accountRepo  repositories.AccountRepository
	documentRepo repositories.DocumentRepository
	documents    DocumentServiceInterface
	log          *zap.Logger
}

func NewStyleService(
	llm utils.CompletionClientInterface,
	accountRepo repositories.AccountRepository,
	documentRepo repositories.DocumentRepository,
	documents DocumentServiceInterface,
	log *zap.Logger,
) StyleServiceInterface {
	return &StyleService{
		llm:          llm,
		accountRepo:  accountRepo,
		documentRepo: documentRepo,
		documents:    documents,
		log:          log,
	}
}

// Generate fingerprints a writing sample and stores it as a style document.
// The steps run in order and stop at the first failure or when ctx ends.
func (s *StyleService) Generate(ctx context.Context, userID uuid.UUID, request request_models.GenerateStyleRequest, report StyleReporter) (*response_models.DocumentResponse, error) {
	user, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if user == nil {
		return nil, utils.ErrUnauthorized
	}
	report.Progress(5, "Authenticated")

	sample := strings.TrimSpace(request.Sample)
	if sample == "" {
		docID, err := parseOptionalID(request.DocumentID)
		if err != nil {
			return nil, err
		}
		if docID == nil {
			return nil, fmt.Errorf("%w: a writing sample or documentId is required", utils.ErrInvalidInput)
		}
		doc, err := s.documents.FindOwned(ctx, userID, *docID)
		if err != nil {
			return nil, err
		}
		sample = strings.TrimSpace(doc.Content)
		report.Log(fmt.Sprintf("Using the content of %q as the sample", doc.Title))
	}
	if sample == "" {
		return nil, fmt.Errorf("%w: the writing sample is empty", utils.ErrInvalidInput)
	}
	report.Progress(10, "Input validated")

	description := trimmed(request.Description)
	if description == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Progress(30, "Analysing writing style")
		description, err = s.llm.Complete(ctx, utils.CompletionRequest{
			System:      styleAnalystSystem,
			Prompt:      buildStyleDescriptionPrompt(sample),
			Temperature: styleTemperature,
		})
		if err != nil {
			return nil, err
		}
		if description = strings.TrimSpace(description); description == "" {
			return nil, fmt.Errorf("%w: empty style description", utils.ErrUnexpectedBehaviorOfAI)
		}
	} else {
		report.Log("Using the provided style description")
	}
	report.Progress(55, "Style description ready")

	title, summary := trimmed(request.Title), trimmed(request.Summary)
	if title == "" || summary == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Progress(60, "Naming the style")
		raw, err := s.llm.Complete(ctx, utils.CompletionRequest{
			System:      styleAnalystSystem,
			Prompt:      buildStyleTitlePrompt(sample, description),
			Temperature: styleTemperature,
		})
		if err != nil {
			return nil, err
		}
		named, err := parseStyleTitle(raw)
		if err != nil {
			s.log.Warn("unparseable style title", zap.String("raw", raw))
			return nil, err
		}
		if title == "" {
			title = named.Title
		}
		if summary == "" {
			summary = named.Summary
		}
	} else {
		report.Log("Using the provided title and summary")
	}
	report.Progress(80, "Title and summary ready")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := &db_models.Document{
		UserID:       userID,
		Title:        title,
		Content:      sample,
		WritingStyle: &description,
		StyleTitle:   &title,
		StyleSummary: &summary,
		IsStyle:      true,
	}
	report.Progress(90, "Saving style")
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, dbError(err)
	}

	report.Progress(100, "Style saved")
	resp := response_models.NewDocumentResponse(doc)
	return &resp, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
