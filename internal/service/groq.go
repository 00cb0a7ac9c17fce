package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cardapio-inteligente/backend/config"
)

const (
	defaultGroqAPIURL  = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultHTTPTimeout = 30 * time.Second

	systemPrompt = "Você é um chef profissional especializado em criar cardápios personalizados. Sempre responda em português do Brasil com JSON válido."
)

// Completion is the result of one completion API call
type Completion struct {
	Text       string
	TokensUsed int
	Model      string
}

// CompletionClient is the gateway interface the orchestrator depends on
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

// GroqService calls the Groq chat-completions API with fixed sampling
// parameters. The HTTP client is injected so tests can substitute a double.
type GroqService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewGroqService creates a new GroqService instance. A nil client gets a
// default with a bounded timeout so one slow upstream call cannot block the
// service indefinitely.
func NewGroqService(cfg *config.Config, client *http.Client) *GroqService {
	apiURL := cfg.GroqAPIURL
	if apiURL == "" {
		apiURL = defaultGroqAPIURL
	}
	model := cfg.GroqModel
	if model == "" {
		model = defaultGroqModel
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &GroqService{
		apiKey: cfg.GroqAPIKey,
		apiURL: apiURL,
		model:  model,
		client: client,
	}
}

// Configured reports whether an API key is present
func (s *GroqService) Configured() bool {
	return s.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends the prompt to the completion endpoint and returns the raw
// reply text plus usage metadata. Exactly one attempt per request.
func (s *GroqService) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if s.apiKey == "" {
		return nil, &ConfigurationError{
			Message: "API Key do Groq não configurada. Configure GROQ_API_KEY no arquivo .env",
		}
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
		TopP:        1,
		Stream:      false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error(), Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Message: fmt.Sprintf("Groq API retornou status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return nil, &EmptyResponseError{}
	}

	model := result.Model
	if model == "" {
		model = s.model
	}

	return &Completion{
		Text:       result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
		Model:      model,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
