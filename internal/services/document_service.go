package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/pkg/markdown"
	"quill/pkg/utils"
)

type DocumentServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, query request_models.ListDocumentsQuery) (*response_models.DocumentListResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*response_models.DocumentResponse, error)
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateDocumentRequest) (*response_models.DocumentResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateDocumentRequest) (*response_models.DocumentResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Pin(ctx context.Context, userID, id uuid.UUID, pinned bool) (*response_models.DocumentResponse, error)
	Placeholders(ctx context.Context, userID, id uuid.UUID) (*response_models.PlaceholdersResponse, error)
	Resolve(ctx context.Context, userID, id uuid.UUID, request request_models.ResolvePlaceholdersRequest) (*response_models.ResolvedContentResponse, error)

	// FindOwned loads a document owned by userID or fails with ErrDocumentNotFound.
	FindOwned(ctx context.Context, userID, id uuid.UUID) (*db_models.Document, error)
}

type DocumentService struct {
	documentRepo repositories.DocumentRepository
}

func NewDocumentService(documentRepo repositories.DocumentRepository) DocumentServiceInterface {
	return &DocumentService{documentRepo: documentRepo}
}

func (s *DocumentService) List(ctx context.Context, userID uuid.UUID, query request_models.ListDocumentsQuery) (*response_models.DocumentListResponse, error) {
	page, pageSize, err := normalizePage(query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}
	folderID, err := parseOptionalID(&query.FolderID)
	if err != nil {
		return nil, err
	}

	docs, total, err := s.documentRepo.List(ctx, repositories.DocumentFilter{
		UserID:     userID,
		FolderID:   folderID,
		StylesOnly: query.Styles,
		Page:       repositories.Page{Page: page, PageSize: pageSize},
	})
	if err != nil {
		return nil, dbError(err)
	}

	return &response_models.DocumentListResponse{
		Items:    response_models.NewDocumentResponses(docs),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *DocumentService) FindOwned(ctx context.Context, userID, id uuid.UUID) (*db_models.Document, error) {
	doc, err := s.documentRepo.FindByIdAndUser(ctx, id, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if doc == nil {
		return nil, utils.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, userID, id uuid.UUID) (*response_models.DocumentResponse, error) {
	doc, err := s.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewDocumentResponse(doc)
	return &resp, nil
}

func (s *DocumentService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateDocumentRequest) (*response_models.DocumentResponse, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = deriveTitle(request.Content)
	}

	doc := &db_models.Document{
		UserID:  userID,
		Title:   title,
		Content: request.Content,
		Prompt:  request.Prompt,
	}
	applyOptions(doc, request.GenerationOptions)

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewDocumentResponse(doc)
	return &resp, nil
}

// Update writes only the fields present in the request. A request with no
// fields returns the stored document without touching the database row.
func (s *DocumentService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateDocumentRequest) (*response_models.DocumentResponse, error) {
	doc, err := s.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if request.Title != nil {
		doc.Title = strings.TrimSpace(*request.Title)
		fields["title"] = doc.Title
	}
	if request.Content != nil {
		doc.Content = *request.Content
		fields["content"] = doc.Content
	}
	if request.Prompt != nil {
		doc.Prompt = request.Prompt
		fields["prompt"] = *request.Prompt
	}
	if request.MarketTier != nil {
		doc.MarketTier = request.MarketTier
		fields["market_tier"] = *request.MarketTier
	}
	if request.CharacterLength != nil {
		doc.CharacterLength = request.CharacterLength
		fields["character_length"] = *request.CharacterLength
	}
	if request.WordLength != nil {
		doc.WordLength = request.WordLength
		fields["word_length"] = *request.WordLength
	}
	if request.GradeLevel != nil {
		doc.GradeLevel = request.GradeLevel
		fields["grade_level"] = *request.GradeLevel
	}
	if request.Benchmark != nil {
		doc.Benchmark = request.Benchmark
		fields["benchmark"] = *request.Benchmark
	}
	if request.AvoidWords != nil {
		doc.AvoidWords = pq.StringArray(cleanWords(*request.AvoidWords))
		fields["avoid_words"] = doc.AvoidWords
	}
	if request.Pinned != nil {
		doc.Pinned = *request.Pinned
		fields["pinned"] = doc.Pinned
	}

	if len(fields) > 0 {
		if err := s.documentRepo.UpdateFields(ctx, doc, fields); err != nil {
			return nil, dbError(err)
		}
	}

	resp := response_models.NewDocumentResponse(doc)
	return &resp, nil
}

func (s *DocumentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	doc, err := s.FindOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return dbError(s.documentRepo.Delete(ctx, doc))
}

func (s *DocumentService) Pin(ctx context.Context, userID, id uuid.UUID, pinned bool) (*response_models.DocumentResponse, error) {
	return s.Update(ctx, userID, id, request_models.UpdateDocumentRequest{Pinned: &pinned})
}

func (s *DocumentService) Placeholders(ctx context.Context, userID, id uuid.UUID) (*response_models.PlaceholdersResponse, error) {
	doc, err := s.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &response_models.PlaceholdersResponse{Placeholders: markdown.Placeholders(doc.Content)}, nil
}

func (s *DocumentService) Resolve(ctx context.Context, userID, id uuid.UUID, request request_models.ResolvePlaceholdersRequest) (*response_models.ResolvedContentResponse, error) {
	doc, err := s.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	resolved, unresolved := markdown.Resolve(doc.Content, request.Values)
	resp := &response_models.ResolvedContentResponse{
		Content:    resolved,
		Unresolved: unresolved,
	}

	if request.Save && resolved != doc.Content {
		doc.Content = resolved
		if err := s.documentRepo.UpdateFields(ctx, doc, map[string]interface{}{"content": resolved}); err != nil {
			return nil, dbError(err)
		}
		resp.Saved = true
	}
	return resp, nil
}

// applyOptions copies the options that were supplied onto doc and returns
// them as column updates. Omitted options leave doc untouched.
func applyOptions(doc *db_models.Document, opts request_models.GenerationOptions) map[string]interface{} {
	fields := make(map[string]interface{})
	if opts.MarketTier != nil {
		doc.MarketTier = opts.MarketTier
		fields["market_tier"] = *opts.MarketTier
	}
	if opts.CharacterLength != nil {
		doc.CharacterLength = opts.CharacterLength
		fields["character_length"] = *opts.CharacterLength
	}
	if opts.WordLength != nil {
		doc.WordLength = opts.WordLength
		fields["word_length"] = *opts.WordLength
	}
	if opts.GradeLevel != nil {
		doc.GradeLevel = opts.GradeLevel
		fields["grade_level"] = *opts.GradeLevel
	}
	if opts.Benchmark != nil {
		doc.Benchmark = opts.Benchmark
		fields["benchmark"] = *opts.Benchmark
	}
	if words := cleanWords(opts.AvoidWords); len(words) > 0 {
		doc.AvoidWords = pq.StringArray(words)
		fields["avoid_words"] = doc.AvoidWords
	}
	return fields
}
