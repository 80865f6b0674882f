// Package gemini calls the Gemini API to rank pending donations by urgency.
// The collaborator is best-effort: any transport, API or parse failure is
// downgraded to "no suggestions" and never reaches the donor as an error.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"need-feeder-api-server/config"
	"need-feeder-api-server/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 15 * time.Second
)

// Suggestion là một donation được đánh giá là khẩn cấp, kèm lý do.
type Suggestion struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type Suggester struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewSuggester builds a Suggester from config. httpClient may be nil.
func NewSuggester(cfg config.GeminiConfig, httpClient *http.Client) *Suggester {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Suggester{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  httpClient,
	}
}

// --- Gemini request/response wire structs ---

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Suggest returns the ranked urgent donations among the given pending ones.
// Với danh sách rỗng thì trả về rỗng luôn, không gọi API. Mọi lỗi đều được
// nuốt tại đây và chỉ ghi log.
func (s *Suggester) Suggest(ctx context.Context, pending []models.Donation) []Suggestion {
	if len(pending) == 0 {
		return []Suggestion{}
	}
	if s.apiKey == "" {
		log.Println("Gemini API key not set, skipping urgency suggestions")
		return []Suggestion{}
	}

	suggestions, err := s.rank(ctx, pending)
	if err != nil {
		log.Printf("Failed to fetch donation suggestions from Gemini: %v", err)
		return []Suggestion{}
	}
	return suggestions
}

func (s *Suggester) rank(ctx context.Context, pending []models.Donation) ([]Suggestion, error) {
	donationsJSON, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal pending donations: %w", err)
	}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildPrompt(string(donationsJSON))}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty candidates in response")
	}

	text := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	text = stripCodeFence(text)

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}

func buildPrompt(donationsJSON string) string {
	return fmt.Sprintf(`You are an AI assistant for a charity platform called 'Need Feeder'. Your task is to identify the most urgent donation requests.
I will provide you with a list of current pending donations in JSON format.
Please analyze them based on their description and type, and identify the top 3 most critical needs.
Return your response ONLY as a valid JSON array. Each object in the array should contain the 'id' of the donation and a brief 'reason' for its urgency.

Example response format:
[
    {"id": "don-123", "reason": "Urgent need for baby formula, which is critical for infant health."},
    {"id": "don-456", "reason": "Request for warm blankets during a cold snap, essential for preventing hypothermia."}
]

Current pending donations:
%s`, donationsJSON)
}

// stripCodeFence gỡ ```json ... ``` nếu model bọc kết quả trong markdown.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
