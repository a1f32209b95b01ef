package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/pkg/utils"
)

const (
	composeTemperature = 0.7
	rewriteTemperature = 0.6
	styleTemperature   = 0.3
)

// BrandVoice is the persona (or legacy brand) applied to a generation.
type BrandVoice struct {
	Name        string
	Info        string
	KeyMessages []string
}

// StyleContext is a saved style fingerprint reused as tone guidance.
type StyleContext struct {
	Title       string
	Summary     string
	Description string
}

type PromptInput struct {
	Options request_models.GenerationOptions
	Brand   *BrandVoice
	Style   *StyleContext
}

func brandFromPersona(p *db_models.Persona) *BrandVoice {
	voice := &BrandVoice{Name: p.Name, Info: p.Info}
	for _, m := range p.KeyMessages {
		if s := strings.TrimSpace(m.Content); s != "" {
			voice.KeyMessages = append(voice.KeyMessages, s)
		}
	}
	return voice
}

func brandFromUser(u *db_models.User) *BrandVoice {
	if strings.TrimSpace(u.BrandName) == "" && strings.TrimSpace(u.BrandInfo) == "" {
		return nil
	}
	return &BrandVoice{Name: u.BrandName, Info: u.BrandInfo}
}

func styleFromDocument(d *db_models.Document) *StyleContext {
	style := &StyleContext{Title: d.Title}
	if d.StyleTitle != nil {
		style.Title = *d.StyleTitle
	}
	if d.StyleSummary != nil {
		style.Summary = *d.StyleSummary
	}
	if d.WritingStyle != nil {
		style.Description = *d.WritingStyle
	}
	return style
}

// buildSystemPrompt turns the option bag, brand and style into the system turn.
func buildSystemPrompt(in PromptInput) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert marketing copywriter. Write clear, persuasive copy in Markdown.\n")
	prompt.WriteString("Return only the copy itself, without preamble or commentary.\n")
	prompt.WriteString("Keep any [Placeholder] tokens from the request unchanged.\n")

	opts := in.Options
	var rules []string
	if opts.MarketTier != nil && strings.TrimSpace(*opts.MarketTier) != "" {
		rules = append(rules, fmt.Sprintf("Tone / market tier: %s", strings.TrimSpace(*opts.MarketTier)))
	}
	if opts.CharacterLength != nil && *opts.CharacterLength > 0 {
		rules = append(rules, fmt.Sprintf("Stay within about %d characters", *opts.CharacterLength))
	}
	if opts.WordLength != nil && *opts.WordLength > 0 {
		rules = append(rules, fmt.Sprintf("Aim for about %d words", *opts.WordLength))
	}
	if opts.GradeLevel != nil && strings.TrimSpace(*opts.GradeLevel) != "" {
		rules = append(rules, fmt.Sprintf("Write at a %s reading grade level", strings.TrimSpace(*opts.GradeLevel)))
	}
	if opts.Benchmark != nil && strings.TrimSpace(*opts.Benchmark) != "" {
		rules = append(rules, fmt.Sprintf("Match the quality and feel of: %s", strings.TrimSpace(*opts.Benchmark)))
	}
	if words := cleanWords(opts.AvoidWords); len(words) > 0 {
		rules = append(rules, fmt.Sprintf("Never use these words: %s", strings.Join(words, ", ")))
	}
	if len(rules) > 0 {
		prompt.WriteString("\nREQUIREMENTS:\n")
		for i, r := range rules {
			prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
		}
	}

	if b := in.Brand; b != nil {
		prompt.WriteString("\nBRAND VOICE:\n")
		if b.Name != "" {
			prompt.WriteString(fmt.Sprintf("Brand: %s\n", b.Name))
		}
		if b.Info != "" {
			prompt.WriteString(fmt.Sprintf("About: %s\n", b.Info))
		}
		if len(b.KeyMessages) > 0 {
			prompt.WriteString("Key messages to weave in where natural:\n")
			for _, m := range b.KeyMessages {
				prompt.WriteString(fmt.Sprintf("- %s\n", m))
			}
		}
	}

	if s := in.Style; s != nil {
		prompt.WriteString("\nWRITING STYLE:\n")
		if s.Title != "" {
			prompt.WriteString(fmt.Sprintf("Style: %s\n", s.Title))
		}
		if s.Summary != "" {
			prompt.WriteString(fmt.Sprintf("Summary: %s\n", s.Summary))
		}
		if s.Description != "" {
			prompt.WriteString(fmt.Sprintf("Description: %s\n", s.Description))
		}
	}

	return prompt.String()
}

func buildRewritePrompt(content, selection, instruction string) string {
	var prompt strings.Builder

	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = "Improve the wording while keeping the meaning"
	}

	prompt.WriteString("Rewrite ONLY the selected passage below. ")
	prompt.WriteString("Return just the replacement text for the selection, with no quotes or commentary.\n\n")
	prompt.WriteString(fmt.Sprintf("Instruction: %s\n\n", instruction))
	prompt.WriteString("Full document for context:\n")
	prompt.WriteString("<<<\n" + content + "\n>>>\n\n")
	prompt.WriteString("Selected passage:\n")
	prompt.WriteString("<<<\n" + selection + "\n>>>\n")
	return prompt.String()
}

const styleAnalystSystem = "You are an editor who analyses writing style. Be specific and concise."

func buildStyleDescriptionPrompt(sample string) string {
	var prompt strings.Builder
	prompt.WriteString("Describe the writing style of the sample below so another writer could reproduce it. ")
	prompt.WriteString("Cover tone, vocabulary, sentence length, structure and formatting habits in one paragraph.\n\n")
	prompt.WriteString("Sample:\n<<<\n" + sample + "\n>>>\n")
	return prompt.String()
}

func buildStyleTitlePrompt(sample, description string) string {
	var prompt strings.Builder
	prompt.WriteString("Name this writing style and summarise it.\n\n")
	prompt.WriteString(fmt.Sprintf("Style description: %s\n\n", description))
	prompt.WriteString("Sample:\n<<<\n" + sample + "\n>>>\n\n")
	prompt.WriteString("Return ONLY valid JSON, no extra text, in this EXACT format:\n")
	prompt.WriteString(`{"title": "Short style name, at most 6 words", "summary": "One sentence summary"}`)
	return prompt.String()
}

type styleTitleResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

func parseStyleTitle(raw string) (styleTitleResult, error) {
	var out styleTitleResult
	cleaned := cleanModelJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, fmt.Errorf("%w: style title is not valid JSON", utils.ErrUnexpectedBehaviorOfAI)
	}
	out.Title = strings.TrimSpace(out.Title)
	out.Summary = strings.TrimSpace(out.Summary)
	if out.Title == "" {
		return out, fmt.Errorf("%w: style title is empty", utils.ErrUnexpectedBehaviorOfAI)
	}
	return out, nil
}

// cleanModelJSON strips markdown fences and any text around the JSON object.
func cleanModelJSON(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

// cleanSelection removes the quotes or fences models like to wrap rewrites in.
func cleanSelection(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "<<<")
	s = strings.TrimSuffix(s, ">>>")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' && !strings.Contains(s[1:len(s)-1], `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

func cleanWords(words []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		key := strings.ToLower(w)
		if w == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}

// deriveTitle picks a document title from the first line of generated copy.
func deriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#>*-_ "))
		line = strings.Trim(line, "*_")
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 80 {
			line = strings.TrimSpace(string(r[:80])) + "…"
		}
		return line
	}
	return "Untitled"
}
