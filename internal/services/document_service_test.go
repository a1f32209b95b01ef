package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/pkg/utils"
)

func TestUpdateDocumentWithEmptyBodyIsNoop(t *testing.T) {
	owner := uuid.New()
	doc := &db_models.Document{UserID: owner, Title: "Launch", Content: "# Launch\n\nBig news."}
	repo := newFakeDocumentRepo(doc)
	svc := NewDocumentService(repo)

	before, err := svc.Get(context.Background(), owner, doc.ID)
	require.NoError(t, err)

	after, err := svc.Update(context.Background(), owner, doc.ID, request_models.UpdateDocumentRequest{})
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Empty(t, repo.updates)
}

func TestUpdateDocumentAppliesOnlyPresentFields(t *testing.T) {
	owner := uuid.New()
	doc := &db_models.Document{UserID: owner, Title: "Launch", Content: "Old"}
	repo := newFakeDocumentRepo(doc)
	svc := NewDocumentService(repo)

	content := "New"
	got, err := svc.Update(context.Background(), owner, doc.ID, request_models.UpdateDocumentRequest{Content: &content})
	require.NoError(t, err)

	assert.Equal(t, "New", got.Content)
	assert.Equal(t, "Launch", got.Title)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, map[string]interface{}{"content": "New"}, repo.updates[0])
}

func TestDocumentOwnership(t *testing.T) {
	doc := &db_models.Document{UserID: uuid.New(), Title: "Private"}
	svc := NewDocumentService(newFakeDocumentRepo(doc))

	_, err := svc.Get(context.Background(), uuid.New(), doc.ID)
	assert.ErrorIs(t, err, utils.ErrDocumentNotFound)

	err = svc.Delete(context.Background(), uuid.New(), doc.ID)
	assert.ErrorIs(t, err, utils.ErrDocumentNotFound)
}

func TestResolvePlaceholders(t *testing.T) {
	owner := uuid.New()
	doc := &db_models.Document{UserID: owner, Content: "Dear [Name], thanks [Reason]. See [Offer]."}
	repo := newFakeDocumentRepo(doc)
	svc := NewDocumentService(repo)

	names, err := svc.Placeholders(context.Background(), owner, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Reason", "Offer"}, names.Placeholders)

	got, err := svc.Resolve(context.Background(), owner, doc.ID, request_models.ResolvePlaceholdersRequest{
		Values: map[string]string{"Name": "Alex", "Reason": "for joining"},
		Save:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Alex, thanks for joining. See [Offer].", got.Content)
	assert.Equal(t, []string{"Offer"}, got.Unresolved)
	assert.True(t, got.Saved)
	assert.Equal(t, got.Content, repo.docs[doc.ID].Content)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, got.Content, repo.updates[0]["content"])
}

func TestResolveDoesNotReportBracketedValues(t *testing.T) {
	owner := uuid.New()
	doc := &db_models.Document{UserID: owner, Content: "Signed, [Name]. Ref [Ticket]."}
	repo := newFakeDocumentRepo(doc)
	svc := NewDocumentService(repo)

	got, err := svc.Resolve(context.Background(), owner, doc.ID, request_models.ResolvePlaceholdersRequest{
		Values: map[string]string{"Name": "[redacted]"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Signed, [redacted]. Ref [Ticket].", got.Content)
	assert.Equal(t, []string{"Ticket"}, got.Unresolved)
	assert.False(t, got.Saved)
	assert.Empty(t, repo.updates)
	assert.Equal(t, "Signed, [Name]. Ref [Ticket].", repo.docs[doc.ID].Content)
}

func TestListDocumentsValidatesPaging(t *testing.T) {
	svc := NewDocumentService(newFakeDocumentRepo())

	_, err := svc.List(context.Background(), uuid.New(), request_models.ListDocumentsQuery{Page: -1})
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.List(context.Background(), uuid.New(), request_models.ListDocumentsQuery{PageSize: 500})
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)

	got, err := svc.List(context.Background(), uuid.New(), request_models.ListDocumentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, defaultPageSize, got.PageSize)
	assert.Empty(t, got.Items)
}

func TestDocumentServiceWithoutDatabase(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.err = utils.ErrDatabaseUnavailable
	svc := NewDocumentService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), request_models.CreateDocumentRequest{Content: "x"})
	assert.ErrorIs(t, err, utils.ErrDatabaseUnavailable)
}
