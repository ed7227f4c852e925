// Package llm grounds a language model in the experiment portfolio: it
// serializes analysis output into a prompt and streams answers from an
// Ollama-compatible endpoint.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Client talks to an Ollama-compatible chat endpoint.
type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient builds a client for the given endpoint and model name. An empty
// baseURL falls back to DefaultBaseURL.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// ChatMessage is a single turn in an Ollama /api/chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatStreamChunk is one newline-delimited JSON event of a streamed chat
// response. The final event (done=true) carries the server-side timings.
type chatStreamChunk struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done               bool  `json:"done"`
	TotalDuration      int64 `json:"total_duration"`       // ns
	LoadDuration       int64 `json:"load_duration"`        // ns
	PromptEvalCount    int   `json:"prompt_eval_count"`
	PromptEvalDuration int64 `json:"prompt_eval_duration"` // ns
	EvalCount          int   `json:"eval_count"`
	EvalDuration       int64 `json:"eval_duration"`        // ns
}

// ResponseMeta reports the server-side timings and token counts of one
// completed generation.
type ResponseMeta struct {
	Model              string `json:"model"`
	TotalDuration      int64  `json:"total_duration"`
	LoadDuration       int64  `json:"load_duration"`
	PromptEvalCount    int    `json:"prompt_eval_count"`
	PromptEvalDuration int64  `json:"prompt_eval_duration"`
	EvalCount          int    `json:"eval_count"`
	EvalDuration       int64  `json:"eval_duration"`
}

// Chat streams a conversation through /api/chat, writing each content chunk
// to out as it arrives, and returns the metadata from the final event.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage, out io.Writer) (ResponseMeta, error) {
	payload := chatRequest{
		Model:    c.Model,
		Messages: messages,
		Stream:   true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ResponseMeta{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return ResponseMeta{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return ResponseMeta{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return ResponseMeta{}, fmt.Errorf("ollama error: status=%d body=%s", resp.StatusCode, string(b))
	}

	var final chatStreamChunk
	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var chunk chatStreamChunk
			if err := json.Unmarshal(line, &chunk); err == nil {
				if chunk.Message.Content != "" {
					if _, werr := io.WriteString(out, chunk.Message.Content); werr != nil {
						return ResponseMeta{}, werr
					}
				}
				if chunk.Done {
					final = chunk
					break
				}
			}
			// Skip malformed lines and keep reading.
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return ResponseMeta{}, readErr
		}
	}

	return ResponseMeta{
		Model:              final.Model,
		TotalDuration:      final.TotalDuration,
		LoadDuration:       final.LoadDuration,
		PromptEvalCount:    final.PromptEvalCount,
		PromptEvalDuration: final.PromptEvalDuration,
		EvalCount:          final.EvalCount,
		EvalDuration:       final.EvalDuration,
	}, nil
}

// Ask answers a single question grounded in the analysis result, streaming
// the answer to out.
func (c *Client) Ask(ctx context.Context, question string, result *portfolio.AnalysisResult, out io.Writer) (ResponseMeta, error) {
	prompt, err := BuildPrompt(question, result)
	if err != nil {
		return ResponseMeta{}, err
	}
	return c.Chat(ctx, []ChatMessage{{Role: "user", Content: prompt}}, out)
}
