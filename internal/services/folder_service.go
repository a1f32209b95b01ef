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

type FolderServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]response_models.FolderResponse, error)
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateFolderRequest) (*response_models.FolderResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateFolderRequest) (*response_models.FolderResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AssignDocument(ctx context.Context, userID, folderID, documentID uuid.UUID) error
	UnassignDocument(ctx context.Context, userID, folderID, documentID uuid.UUID) error
	ListDocuments(ctx context.Context, userID, folderID uuid.UUID, page, pageSize int) (*response_models.DocumentListResponse, error)
}

type FolderService struct {
	folderRepo repositories.FolderRepository
	documents  DocumentServiceInterface
}

func NewFolderService(folderRepo repositories.FolderRepository, documents DocumentServiceInterface) FolderServiceInterface {
	return &FolderService{folderRepo: folderRepo, documents: documents}
}

func (s *FolderService) List(ctx context.Context, userID uuid.UUID) ([]response_models.FolderResponse, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}

	out := response_models.NewFolderResponses(folders)
	for i := range out {
		if out[i].Documents, err = s.folderRepo.CountDocuments(ctx, folders[i].ID); err != nil {
			return nil, dbError(err)
		}
	}
	return out, nil
}

func (s *FolderService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateFolderRequest) (*response_models.FolderResponse, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, utils.ErrInvalidInput
	}

	folder := &db_models.Folder{UserID: userID, Name: name, Pinned: request.Pinned}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewFolderResponse(folder)
	return &resp, nil
}

func (s *FolderService) Update(ctx context.Context, userID, id uuid.UUID, request request_models.UpdateFolderRequest) (*response_models.FolderResponse, error) {
	folder, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, utils.ErrInvalidInput
		}
		folder.Name = name
		fields["name"] = name
	}
	if request.Pinned != nil {
		folder.Pinned = *request.Pinned
		fields["pinned"] = folder.Pinned
	}

	if err := s.folderRepo.UpdateFields(ctx, folder, fields); err != nil {
		return nil, dbError(err)
	}
	resp := response_models.NewFolderResponse(folder)
	return &resp, nil
}

func (s *FolderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	folder, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return dbError(s.folderRepo.Delete(ctx, folder))
}

func (s *FolderService) AssignDocument(ctx context.Context, userID, folderID, documentID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, folderID); err != nil {
		return err
	}
	if _, err := s.documents.FindOwned(ctx, userID, documentID); err != nil {
		return err
	}
	return dbError(s.folderRepo.AssignDocument(ctx, folderID, documentID))
}

func (s *FolderService) UnassignDocument(ctx context.Context, userID, folderID, documentID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, folderID); err != nil {
		return err
	}
	return dbError(s.folderRepo.UnassignDocument(ctx, folderID, documentID))
}

func (s *FolderService) ListDocuments(ctx context.Context, userID, folderID uuid.UUID, page, pageSize int) (*response_models.DocumentListResponse, error) {
	if _, err := s.findOwned(ctx, userID, folderID); err != nil {
		return nil, err
	}
	return s.documents.List(ctx, userID, request_models.ListDocumentsQuery{
		Page:     page,
		PageSize: pageSize,
		FolderID: folderID.String(),
	})
}

func (s *FolderService) findOwned(ctx context.Context, userID, id uuid.UUID) (*db_models.Folder, error) {
	folder, err := s.folderRepo.FindByIdAndUser(ctx, id, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if folder == nil {
		return nil, utils.ErrFolderNotFound
	}
	return folder, nil
}
