// Package coaching turns a diagnosis result into a short study note for the
// learner. Notes come from an LLM when one is configured, written in the
// coaching voice of the learner's primary type; otherwise they are built
// from the type catalog.
package coaching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/diagnosis"
	"github.com/abhisek/learntype/internal/llm"
	"github.com/abhisek/learntype/internal/scoring"
)

// Note sources.
const (
	SourceLLM     = "llm"
	SourceCatalog = "catalog"
)

// Note is a coaching note for one result.
type Note struct {
	Headline  string   `json:"headline"`
	Message   string   `json:"message"`
	NextSteps []string `json:"next_steps"`
	Source    string   `json:"source"`
}

// Config holds configuration for the coach.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.7,
	}
}

// Coach writes coaching notes.
type Coach struct {
	provider llm.Provider
	catalog  *diagnosis.Catalog
	cfg      Config
	logger   *zap.Logger
}

// New creates a coach. provider may be nil, in which case every note comes
// from the catalog.
func New(provider llm.Provider, catalog *diagnosis.Catalog, cfg Config, logger *zap.Logger) *Coach {
	if catalog == nil {
		catalog = diagnosis.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{provider: provider, catalog: catalog, cfg: cfg, logger: logger.Named("coaching")}
}

// HasLLM reports whether notes can come from an LLM.
func (c *Coach) HasLLM() bool {
	return c.provider != nil
}

// Note returns a note for result. LLM failures fall back to the catalog
// note; the error is only returned when the primary type is unknown.
func (c *Coach) Note(ctx context.Context, result *diagnosis.Result) (*Note, error) {
	if c.provider != nil {
		note, err := c.Generate(ctx, result)
		if err == nil {
			return note, nil
		}
		c.logger.Warn("llm coaching note failed, using catalog note",
			zap.String("primary", string(result.Primary)), zap.Error(err))
	}
	return c.Fallback(result)
}

// noteOutput is the raw LLM response.
type noteOutput struct {
	Headline  string   `json:"headline"`
	Message   string   `json:"message"`
	NextSteps []string `json:"next_steps"`
}

// Generate asks the LLM for a note. It fails when no provider is configured.
func (c *Coach) Generate(ctx context.Context, result *diagnosis.Result) (*Note, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	ctx = llm.WithSubject(llm.WithPurpose(ctx, "coaching-note"), string(result.Primary))

	userMsg, err := c.buildMessage(result)
	if err != nil {
		return nil, fmt.Errorf("build coaching prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      NoteSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM coaching note failed: %w", err)
	}

	var raw noteOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse coaching note: %w", err)
	}
	if strings.TrimSpace(raw.Headline) == "" || strings.TrimSpace(raw.Message) == "" {
		return nil, fmt.Errorf("coaching note is empty")
	}

	return &Note{
		Headline:  strings.TrimSpace(raw.Headline),
		Message:   strings.TrimSpace(raw.Message),
		NextSteps: raw.NextSteps,
		Source:    SourceLLM,
	}, nil
}

// Fallback builds a note from the catalog entry of the primary type.
func (c *Coach) Fallback(result *diagnosis.Result) (*Note, error) {
	t, ok := c.catalog.Type(result.Primary)
	if !ok {
		return nil, fmt.Errorf("unknown learning type %q", result.Primary)
	}

	headline := t.DisplayName
	if len(t.Coaching.LanguagePatterns) > 0 {
		headline = t.Coaching.LanguagePatterns[len(t.Coaching.LanguagePatterns)-1]
	}

	msg := fmt.Sprintf("You are mostly %s: %s.", article(t.DisplayName), strings.ToLower(t.Description))
	if result.HasSecondary() {
		msg += fmt.Sprintf(" You also share traits with the %s.", c.catalog.DisplayName(result.Secondary))
	}
	if len(t.Strengths) > 0 {
		msg += fmt.Sprintf(" Lean on your %s.", strings.ToLower(t.Strengths[0]))
	}

	steps := t.Strategies
	if len(steps) > 3 {
		steps = steps[:3]
	}

	return &Note{
		Headline:  headline,
		Message:   msg,
		NextSteps: append([]string(nil), steps...),
		Source:    SourceCatalog,
	}, nil
}

func article(name string) string {
	if name != "" && strings.ContainsRune("AEIOU", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}

const systemPrompt = `You are a warm, practical study coach writing for a student who has just finished a learning-type questionnaire.

Instructions:
- Write in the communication style and voice given in the prompt.
- Reuse the feel of the sample phrases, but do not copy them word for word.
- Ground every next step in the recommended strategies.
- Never mention scores, percentages, or the word "questionnaire".
- Keep the message under four sentences.`

var userTemplate = template.Must(template.New("coaching").Parse(`Learning type: {{.Type.DisplayName}} ({{.Type.ScientificName}})
About this type: {{.Type.Description}}
{{- if .Secondary}}
Secondary type: {{.Secondary}}{{end}}

Coach voice: {{.Type.Coaching.CommunicationStyle}}
Motivation approach: {{.Type.Coaching.MotivationApproach}}
Preferred learning style: {{.Type.Coaching.LearningStyle}}
Sample phrases:
{{range .Type.Coaching.LanguagePatterns}}- {{.}}
{{end}}
Strengths:
{{range .Type.Strengths}}- {{.}}
{{end}}
Recommended strategies:
{{range .Type.Strategies}}- {{.}}
{{end}}
Strongest traits:
{{range .TopTraits}}- {{.Dimension}}: {{.Score}}
{{end}}`))

type promptData struct {
	Type      diagnosis.Type
	Secondary string
	TopTraits []scoring.Entry
}

func (c *Coach) buildMessage(result *diagnosis.Result) (string, error) {
	t, ok := c.catalog.Type(result.Primary)
	if !ok {
		return "", fmt.Errorf("unknown learning type %q", result.Primary)
	}
	data := promptData{Type: t, TopTraits: result.TraitScores.Top(3)}
	if result.HasSecondary() {
		data.Secondary = c.catalog.DisplayName(result.Secondary)
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
