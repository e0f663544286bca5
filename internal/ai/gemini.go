package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBase = "https://generativelanguage.googleapis.com"

// Gemini implements Service against the Gemini generateContent REST
// endpoint. No streaming; one request, one text response.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewGemini(apiKey, model string, timeout time.Duration, logger *slog.Logger) *Gemini {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBase,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Gemini) GenerateTitle(ctx context.Context, text string) (string, error) {
	return g.generate(ctx,
		"Generate a short, catchy title (5 words maximum) for the following note. "+
			"Reply with the title only, no quotes.\n\n"+text)
}

func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	return g.generate(ctx,
		"Summarize the following note in two or three sentences.\n\n"+text)
}

func (g *Gemini) ContinueWriting(ctx context.Context, text string) (string, error) {
	return g.generate(ctx,
		"Continue the following text naturally, matching its tone and style. "+
			"Reply with the continuation only.\n\n"+text)
}

func (g *Gemini) FixGrammar(ctx context.Context, text string) (string, error) {
	return g.generate(ctx,
		"Correct the spelling and grammar of the following text. Keep the meaning "+
			"and formatting, and reply with the corrected text only.\n\n"+text)
}

func (g *Gemini) CustomGenerate(ctx context.Context, prompt, contextText string, att *Attachment) (string, error) {
	var b strings.Builder
	b.WriteString(prompt)
	if contextText != "" {
		b.WriteString("\n\nNote content for context:\n")
		b.WriteString(contextText)
	}
	parts := []geminiPart{}
	if att != nil && att.IsText() {
		fmt.Fprintf(&b, "\n\nAttached file %s:\n%s", att.Name, att.Data)
	}
	parts = append(parts, geminiPart{Text: b.String()})
	if att != nil && att.IsImage() {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: att.MIME,
			Data:     base64.StdEncoding.EncodeToString(att.Data),
		}})
	}
	return g.call(ctx, parts)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, []geminiPart{{Text: prompt}})
}

func (g *Gemini) call(ctx context.Context, parts []geminiPart) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("no API key configured")
	}
	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("gemini: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini: status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 {
		return "", errors.New("gemini: empty response")
	}
	var out strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	g.logger.Debug("gemini call", "model", g.model, "elapsed", time.Since(start))
	return strings.TrimSpace(out.String()), nil
}
