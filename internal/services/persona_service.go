package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/pkg/utils"
)

type PersonaServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]response_models.PersonaResponse, error)
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreatePersonaRequest) (*response_models.PersonaResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdatePersonaRequest) (*response_models.PersonaResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Activate(ctx context.Context, userID, id uuid.UUID) (*response_models.PersonaResponse, error)
	ClearActive(ctx context.Context, userID uuid.UUID) error

	ListKeyMessages(ctx context.Context, userID, personaID uuid.UUID) ([]response_models.KeyMessageResponse, error)
	AddKeyMessage(ctx context.Context, userID, personaID uuid.UUID, request request_models.KeyMessageRequest) (*response_models.KeyMessageResponse, error)
	UpdateKeyMessage(ctx context.Context, userID, personaID, messageID uuid.UUID, request request_models.UpdateKeyMessageRequest) (*response_models.KeyMessageResponse, error)
	DeleteKeyMessage(ctx context.Context, userID, personaID, messageID uuid.UUID) error

	// ResolveVoice picks the brand voice for a generation: the requested
	// persona, else the active persona, else the legacy brand fields.
	ResolveVoice(ctx context.Context, userID uuid.UUID, personaID *uuid.UUID) (*BrandVoice, error)
}

type PersonaService struct {
	personaRepo repositories.PersonaRepository
	accountRepo repositories.AccountRepository
}

func NewPersonaService(personaRepo repositories.PersonaRepository, accountRepo repositories.AccountRepository) PersonaServiceInterface {
	return &PersonaService{personaRepo: personaRepo, accountRepo: accountRepo}
}

func (s *PersonaService) List(ctx context.Context, userID uuid.UUID) ([]response_models.PersonaResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	personas, err := s.personaRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]response_models.PersonaResponse, 0, len(personas))
	for i := range personas {
		out = append(out, response_models.NewPersonaResponse(&personas[i], isActive(user, personas[i].ID)))
	}
	return out, nil
}

func (s *PersonaService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreatePersonaRequest) (*response_models.PersonaResponse, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, utils.ErrInvalidInput
	}

	persona := &db_models.Persona{
		UserID: userID,
		Name:   name,
		Info:   strings.TrimSpace(request.Info),
	}
	for i, content := range request.KeyMessages {
		if content = strings.TrimSpace(content); content != "" {
			persona.KeyMessages = append(persona.KeyMessages, db_models.KeyMessage{Content: content, Position: i})
		}
	}

	if err := s.personaRepo.Create(ctx, persona); err != nil {
		return nil, dbError(err)
	}
	if request.Activate {
		if err := s.accountRepo.SetActivePersona(ctx, userID, &persona.ID); err != nil {
			return nil, dbError(err)
		}
	}

	resp := response_models.NewPersonaResponse(persona, request.Activate)
	return &resp, nil
}

func (s *PersonaService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdatePersonaRequest) (*response_models.PersonaResponse, error) {
	persona, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, utils.ErrInvalidInput
		}
		persona.Name = name
		fields["name"] = name
	}
	if request.Info != nil {
		persona.Info = strings.TrimSpace(*request.Info)
		fields["info"] = persona.Info
	}
	if err := s.personaRepo.UpdateFields(ctx, persona, fields); err != nil {
		return nil, dbError(err)
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewPersonaResponse(persona, isActive(user, persona.ID))
	return &resp, nil
}

func (s *PersonaService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	persona, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return dbError(s.personaRepo.Delete(ctx, persona))
}

func (s *PersonaService) Activate(ctx context.Context, userID, id uuid.UUID) (*response_models.PersonaResponse, error) {
	persona, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.SetActivePersona(ctx, userID, &persona.ID); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewPersonaResponse(persona, true)
	return &resp, nil
}

func (s *PersonaService) ClearActive(ctx context.Context, userID uuid.UUID) error {
	return dbError(s.accountRepo.SetActivePersona(ctx, userID, nil))
}

func (s *PersonaService) ListKeyMessages(ctx context.Context, userID, personaID uuid.UUID) ([]response_models.KeyMessageResponse, error) {
	if _, err := s.findOwned(ctx, userID, personaID); err != nil {
		return nil, err
	}
	msgs, err := s.personaRepo.ListKeyMessages(ctx, personaID)
	if err != nil {
		return nil, dbError(err)
	}
	return response_models.NewKeyMessageResponses(msgs), nil
}

func (s *PersonaService) AddKeyMessage(ctx context.Context, userID, personaID uuid.UUID, request request_models.KeyMessageRequest) (*response_models.KeyMessageResponse, error) {
	persona, err := s.findOwned(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, utils.ErrInvalidInput
	}

	position := len(persona.KeyMessages)
	if request.Position != nil {
		position = *request.Position
	}
	msg := &db_models.KeyMessage{PersonaID: persona.ID, Content: content, Position: position}
	if err := s.personaRepo.CreateKeyMessage(ctx, msg); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewKeyMessageResponse(msg)
	return &resp, nil
}

func (s *PersonaService) UpdateKeyMessage(ctx context.Context, userID, personaID, messageID uuid.UUID, request request_models.UpdateKeyMessageRequest) (*response_models.KeyMessageResponse, error) {
	msg, err := s.findKeyMessage(ctx, userID, personaID, messageID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if request.Content != nil {
		content := strings.TrimSpace(*request.Content)
		if content == "" {
			return nil, utils.ErrInvalidInput
		}
		msg.Content = content
		fields["content"] = content
	}
	if request.Position != nil {
		msg.Position = *request.Position
		fields["position"] = msg.Position
	}
	if err := s.personaRepo.UpdateKeyMessage(ctx, msg, fields); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewKeyMessageResponse(msg)
	return &resp, nil
}

func (s *PersonaService) DeleteKeyMessage(ctx context.Context, userID, personaID, messageID uuid.UUID) error {
	msg, err := s.findKeyMessage(ctx, userID, personaID, messageID)
	if err != nil {
		return err
	}
	return dbError(s.personaRepo.DeleteKeyMessage(ctx, msg))
}

func (s *PersonaService) ResolveVoice(ctx context.Context, userID uuid.UUID, personaID *uuid.UUID) (*BrandVoice, error) {
	if personaID != nil {
		persona, err := s.findOwned(ctx, userID, *personaID)
		if err != nil {
			return nil, err
		}
		return brandFromPersona(persona), nil
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ActivePersonaID != nil {
		persona, err := s.personaRepo.FindByIdAndUser(ctx, *user.ActivePersonaID, userID)
		if err != nil {
			return nil, dbError(err)
		}
		if persona != nil {
			return brandFromPersona(persona), nil
		}
	}
	return brandFromUser(user), nil
}

func (s *PersonaService) findOwned(ctx context.Context, userID, id uuid.UUID) (*db_models.Persona, error) {
	persona, err := s.personaRepo.FindByIdAndUser(ctx, id, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if persona == nil {
		return nil, utils.ErrPersonaNotFound
	}
	return persona, nil
}

func (s *PersonaService) findKeyMessage(ctx context.Context, userID, personaID, messageID uuid.UUID) (*db_models.KeyMessage, error) {
	if _, err := s.findOwned(ctx, userID, personaID); err != nil {
		return nil, err
	}
	msg, err := s.personaRepo.FindKeyMessage(ctx, personaID, messageID)
	if err != nil {
		return nil, dbError(err)
	}
	if msg == nil {
		return nil, utils.ErrKeyMessageNotFound
	}
	return msg, nil
}

func (s *PersonaService) findUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func isActive(user *db_models.User, personaID uuid.UUID) bool {
	return user.ActivePersonaID != nil && *user.ActivePersonaID == personaID
}
