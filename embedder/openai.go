package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klejdi94/simscore/core"
)

const (
	defaultOpenAIBase  = "https://api.openai.com/v1"
	DefaultOpenAIModel = "text-embedding-3-large"
)

// OpenAIConfig configures the OpenAI embeddings client.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAI calls the OpenAI embeddings API.
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAI creates an embedder using the OpenAI embeddings API.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder: API key required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenAIBase
	}
	client := cfg.HTTPClient
	if client == nil {
		client = defaultHTTPClient()
	}
	return &OpenAI{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: client,
	}, nil
}

// Model returns the model identifier sent with every request.
func (e *OpenAI) Model() string {
	return e.model
}

type openAIEmbedReq struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type openAIEmbedResp struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

type openAIErrorResp struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed implements Embedder.
func (e *OpenAI) Embed(ctx context.Context, text string) (core.Vector, error) {
	body := openAIEmbedReq{Input: []string{text}, Model: e.model}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		bs, _ := io.ReadAll(resp.Body)
		var apiErr openAIErrorResp
		if json.Unmarshal(bs, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openai embeddings %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openai embeddings %d: %s", resp.StatusCode, strings.TrimSpace(string(bs)))
	}
	var out openAIEmbedResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openai embeddings decode: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: no data")
	}
	return core.Vector(out.Data[0].Embedding), nil
}
