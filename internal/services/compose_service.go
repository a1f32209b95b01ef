package services

import (
	"context"
	"errors"
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

type ComposeServiceInterface interface {
	Compose(ctx context.Context, caller Caller, request request_models.ComposeRequest) (*response_models.ComposeResponse, error)
	Rewrite(ctx context.Context, caller Caller, request request_models.RewriteRequest) (*response_models.RewriteResponse, error)
}

type ComposeService struct {
	llm          utils.CompletionClientInterface
	documentRepo repositories.DocumentRepository
	documents    DocumentServiceInterface
	personas     PersonaServiceInterface
	guests       *GuestLimiter
	log          *zap.Logger
}

func NewComposeService(
	llm utils.CompletionClientInterface,
	documentRepo repositories.DocumentRepository,
	documents DocumentServiceInterface,
	personas PersonaServiceInterface,
	guests *GuestLimiter,
	log *zap.Logger,
) ComposeServiceInterface {
	return &ComposeService{
		llm:          llm,
		documentRepo: documentRepo,
		documents:    documents,
		personas:     personas,
		guests:       guests,
		log:          log,
	}
}

// generationContext is what a signed in caller brings to a generation.
type generationContext struct {
	brand   *BrandVoice
	persist bool
}

func (s *ComposeService) loadContext(ctx context.Context, caller Caller, personaID *string) (generationContext, error) {
	if !caller.Authenticated() {
		return generationContext{}, nil
	}

	id, err := parseOptionalID(personaID)
	if err != nil {
		return generationContext{}, err
	}

	brand, err := s.personas.ResolveVoice(ctx, *caller.UserID, id)
	switch {
	case errors.Is(err, utils.ErrDatabaseUnavailable):
		return generationContext{}, nil
	case errors.Is(err, utils.ErrAccountNotFound):
		// token for a user that no longer exists
		return generationContext{}, utils.ErrUnauthorized
	case err != nil:
		return generationContext{}, err
	}
	return generationContext{brand: brand, persist: true}, nil
}

func (s *ComposeService) Compose(ctx context.Context, caller Caller, request request_models.ComposeRequest) (*response_models.ComposeResponse, error) {
	prompt := strings.TrimSpace(request.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", utils.ErrInvalidInput)
	}
	var reservation *GuestReservation
	if !caller.Authenticated() {
		var err error
		if reservation, err = s.guests.Reserve(caller.GuestKey); err != nil {
			return nil, err
		}
		defer reservation.Release()
	}

	gen, err := s.loadContext(ctx, caller, request.PersonaID)
	if err != nil {
		return nil, err
	}

	var style *StyleContext
	var target *db_models.Document
	if gen.persist {
		if styleID, err := parseOptionalID(request.StyleDocumentID); err != nil {
			return nil, err
		} else if styleID != nil {
			styleDoc, err := s.documents.FindOwned(ctx, *caller.UserID, *styleID)
			if err != nil {
				return nil, err
			}
			style = styleFromDocument(styleDoc)
		}

		if docID, err := parseOptionalID(request.DocumentID); err != nil {
			return nil, err
		} else if docID != nil {
			if target, err = s.documents.FindOwned(ctx, *caller.UserID, *docID); err != nil {
				return nil, err
			}
		}
	}

	content, err := s.llm.Complete(ctx, utils.CompletionRequest{
		System:      buildSystemPrompt(PromptInput{Options: request.GenerationOptions, Brand: gen.brand, Style: style}),
		Prompt:      prompt,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty completion", utils.ErrUnexpectedBehaviorOfAI)
	}

	resp := &response_models.ComposeResponse{Content: content}
	if !caller.Authenticated() {
		resp.GuestRemaining = reservation.Commit()
		return resp, nil
	}
	if !gen.persist {
		return resp, nil
	}

	doc, err := s.saveComposition(ctx, *caller.UserID, target, request, content)
	if err != nil {
		return nil, err
	}
	docResp := response_models.NewDocumentResponse(doc)
	resp.Saved = true
	resp.Document = &docResp
	return resp, nil
}

func (s *ComposeService) saveComposition(ctx context.Context, userID uuid.UUID, target *db_models.Document, request request_models.ComposeRequest, content string) (*db_models.Document, error) {
	prompt := strings.TrimSpace(request.Prompt)

	if target != nil {
		fields := applyOptions(target, request.GenerationOptions)
		target.Content = content
		target.Prompt = &prompt
		fields["content"] = content
		fields["prompt"] = prompt
		if request.Title != nil && strings.TrimSpace(*request.Title) != "" {
			target.Title = strings.TrimSpace(*request.Title)
			fields["title"] = target.Title
		}

		if err := s.documentRepo.UpdateFields(ctx, target, fields); err != nil {
			return nil, dbError(err)
		}
		return target, nil
	}

	title := deriveTitle(content)
	if request.Title != nil && strings.TrimSpace(*request.Title) != "" {
		title = strings.TrimSpace(*request.Title)
	}
	doc := &db_models.Document{
		UserID:  userID,
		Title:   title,
		Content: content,
		Prompt:  &prompt,
	}
	applyOptions(doc, request.GenerationOptions)

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, dbError(err)
	}
	return doc, nil
}

// Rewrite regenerates the selected passage and splices it back into the
// first occurrence of the selection in content.
func (s *ComposeService) Rewrite(ctx context.Context, caller Caller, request request_models.RewriteRequest) (*response_models.RewriteResponse, error) {
	if request.Selection == "" {
		return nil, fmt.Errorf("%w: selection is required", utils.ErrInvalidInput)
	}
	idx := strings.Index(request.Content, request.Selection)
	if idx < 0 {
		return nil, utils.ErrSelectionNotFound
	}
	var reservation *GuestReservation
	if !caller.Authenticated() {
		var err error
		if reservation, err = s.guests.Reserve(caller.GuestKey); err != nil {
			return nil, err
		}
		defer reservation.Release()
	}

	gen, err := s.loadContext(ctx, caller, request.PersonaID)
	if err != nil {
		return nil, err
	}

	var target *db_models.Document
	if gen.persist {
		if docID, err := parseOptionalID(request.DocumentID); err != nil {
			return nil, err
		} else if docID != nil {
			if target, err = s.documents.FindOwned(ctx, *caller.UserID, *docID); err != nil {
				return nil, err
			}
		}
	}

	out, err := s.llm.Complete(ctx, utils.CompletionRequest{
		System:      buildSystemPrompt(PromptInput{Options: request.GenerationOptions, Brand: gen.brand}),
		Prompt:      buildRewritePrompt(request.Content, request.Selection, request.Instruction),
		Temperature: rewriteTemperature,
	})
	if err != nil {
		return nil, err
	}
	rewritten := cleanSelection(out)
	if rewritten == "" {
		return nil, fmt.Errorf("%w: empty rewrite", utils.ErrUnexpectedBehaviorOfAI)
	}

	merged := request.Content[:idx] + rewritten + request.Content[idx+len(request.Selection):]
	resp := &response_models.RewriteResponse{Rewritten: rewritten, Content: merged}

	if !caller.Authenticated() {
		resp.GuestRemaining = reservation.Commit()
		return resp, nil
	}
	if target != nil {
		target.Content = merged
		if err := s.documentRepo.UpdateFields(ctx, target, map[string]interface{}{"content": merged}); err != nil {
			return nil, dbError(err)
		}
		docResp := response_models.NewDocumentResponse(target)
		resp.Saved = true
		resp.Document = &docResp
	}
	return resp, nil
}
