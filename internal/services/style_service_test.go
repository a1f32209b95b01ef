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

func newStyleFixture() (*fakeLLM, *fakeDocumentRepo, *db_models.User, StyleServiceInterface) {
	llm := &fakeLLM{}
	docs := newFakeDocumentRepo()
	user := &db_models.User{Email: "writer@example.com"}
	accounts := newFakeAccountRepo(user)
	svc := NewStyleService(llm, accounts, docs, NewDocumentService(docs), testLogger)
	return llm, docs, user, svc
}

func TestGenerateStyleRunsEveryStep(t *testing.T) {
	llm, docs, user, svc := newStyleFixture()
	llm.responses = []string{
		"Short punchy sentences with a wry tone.",
		"```json\n{\"title\": \"Wry Punch\", \"summary\": \"Short and witty.\"}\n```",
	}
	report := &recordingReporter{}

	got, err := svc.Generate(context.Background(), user.ID, request_models.GenerateStyleRequest{
		Sample: "We fix bikes. Fast. Mostly.",
	}, report)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 10, 30, 55, 60, 80, 90, 100}, report.percents())
	assert.Equal(t, 2, llm.calls())
	assert.True(t, got.IsStyle)
	assert.Equal(t, "Wry Punch", got.Title)
	assert.Equal(t, "Short and witty.", *got.StyleSummary)
	assert.Equal(t, "Short punchy sentences with a wry tone.", *got.WritingStyle)
	assert.Equal(t, 1, docs.creates)
}

func TestGenerateStyleSkipsSuppliedSteps(t *testing.T) {
	llm, _, user, svc := newStyleFixture()
	report := &recordingReporter{}
	description, title, summary := "Calm and precise.", "Calm", "Measured copy."

	got, err := svc.Generate(context.Background(), user.ID, request_models.GenerateStyleRequest{
		Sample:      "Measure twice.",
		Description: &description,
		Title:       &title,
		Summary:     &summary,
	}, report)
	require.NoError(t, err)

	assert.Zero(t, llm.calls())
	assert.Equal(t, []int{5, 10, 55, 80, 90, 100}, report.percents())
	assert.Equal(t, "Calm", got.Title)
}

func TestGenerateStyleFromSavedDocument(t *testing.T) {
	llm, docs, user, svc := newStyleFixture()
	source := &db_models.Document{BaseModel: db_models.BaseModel{ID: uuid.New()}, UserID: user.ID, Title: "About us", Content: "We are small."}
	docs.docs[source.ID] = source
	llm.responses = []string{"Modest.", `{"title": "Modest", "summary": "Humble voice."}`}

	id := source.ID.String()
	got, err := svc.Generate(context.Background(), user.ID, request_models.GenerateStyleRequest{DocumentID: &id}, &recordingReporter{})
	require.NoError(t, err)
	assert.Equal(t, "We are small.", got.Content)
}

func TestGenerateStyleValidation(t *testing.T) {
	llm, _, user, svc := newStyleFixture()
	report := &recordingReporter{}

	_, err := svc.Generate(context.Background(), user.ID, request_models.GenerateStyleRequest{}, report)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Equal(t, []int{5}, report.percents())
	assert.Zero(t, llm.calls())
}

func TestGenerateStyleStopsOnModelFailure(t *testing.T) {
	llm, docs, user, svc := newStyleFixture()
	llm.responses = []string{"A description.", "not json at all"}
	report := &recordingReporter{}

	_, err := svc.Generate(context.Background(), user.ID, request_models.GenerateStyleRequest{Sample: "x"}, report)
	assert.ErrorIs(t, err, utils.ErrUnexpectedBehaviorOfAI)
	assert.Equal(t, []int{5, 10, 30, 55, 60}, report.percents())
	assert.Zero(t, docs.creates)
}

func TestGenerateStyleHonoursCancellation(t *testing.T) {
	llm, _, user, svc := newStyleFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, user.ID, request_models.GenerateStyleRequest{Sample: "x"}, &recordingReporter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, llm.calls())
}
