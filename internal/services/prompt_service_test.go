package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/models/request_models"
	"quill/pkg/utils"
)

func mustParse(t *testing.T, id string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return parsed
}

func TestBuildSystemPromptOmitsEmptyOptions(t *testing.T) {
	got := buildSystemPrompt(PromptInput{})
	assert.NotContains(t, got, "REQUIREMENTS")
	assert.NotContains(t, got, "BRAND VOICE")
	assert.NotContains(t, got, "WRITING STYLE")
}

func TestBuildSystemPromptOptions(t *testing.T) {
	words, grade := 120, "8th"
	got := buildSystemPrompt(PromptInput{
		Options: request_models.GenerationOptions{
			WordLength: &words,
			GradeLevel: &grade,
			AvoidWords: []string{" synergy ", "Synergy", "", "leverage"},
		},
		Style: &StyleContext{Title: "Wry Punch", Description: "Short sentences."},
	})

	assert.Contains(t, got, "1. Aim for about 120 words")
	assert.Contains(t, got, "2. Write at a 8th reading grade level")
	assert.Contains(t, got, "3. Never use these words: synergy, leverage")
	assert.Contains(t, got, "Style: Wry Punch")
	assert.Contains(t, got, "Description: Short sentences.")
}

func TestParseStyleTitle(t *testing.T) {
	got, err := parseStyleTitle("Sure! ```json\n{\"title\": \" Bold \", \"summary\": \"Loud.\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Bold", got.Title)
	assert.Equal(t, "Loud.", got.Summary)

	_, err = parseStyleTitle(`{"summary": "no title"}`)
	assert.ErrorIs(t, err, utils.ErrUnexpectedBehaviorOfAI)
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Spring Sale", deriveTitle("\n\n## **Spring Sale**\n\nBody"))
	assert.Equal(t, "Untitled", deriveTitle("  \n"))
}

func TestCleanSelection(t *testing.T) {
	assert.Equal(t, "brilliant", cleanSelection(` "brilliant" `))
	assert.Equal(t, `say "hi" now`, cleanSelection(`say "hi" now`))
	assert.Equal(t, "text", cleanSelection("<<<\ntext\n>>>"))
}
