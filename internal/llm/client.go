package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dshills/redline/internal/review"
)

// ErrNoResult reports a response that completed but carried no usable
// reviewText tool call.
var ErrNoResult = errors.New("no review result in response")

// toolName is the function the model is asked to call with its findings.
const toolName = "reviewText"

// Client talks to a local OpenAI-compatible chat-completions endpoint and
// extracts structured review issues from the reviewText tool call.
type Client struct {
	model   string
	url     string
	httpc   *http.Client
	retries int
}

// New creates a client for the backend listening on the given local port.
func New(model string, port int) *Client {
	return NewWithURL(model, fmt.Sprintf("http://localhost:%d/v1/chat/completions", port))
}

// NewWithURL creates a client for an explicit endpoint URL.
func NewWithURL(model, url string) *Client {
	return &Client{
		model:   model,
		url:     url,
		httpc:   &http.Client{Timeout: 300 * time.Second},
		retries: 2,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
	Messages    []chatMessage `json:"messages"`
	Tools       []tool        `json:"tools"`
	ToolChoice  string        `json:"tool_choice"`
}

type tool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Type     string `json:"type"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// reviewArguments is the JSON payload of the reviewText tool call.
type reviewArguments struct {
	Reviews []review.RawIssue `json:"reviews"`
}

// Review sends the prompt and returns the structured issues from the
// reviewText tool call. Transport failures, non-2xx statuses, and malformed
// payloads all surface as errors here; callers absorb them into an empty
// review cycle rather than propagating further.
func (c *Client) Review(ctx context.Context, prompt string) ([]review.RawIssue, error) {
	body := chatRequest{
		Model:       c.model,
		Temperature: 0,
		Stream:      false,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Tools:       []tool{reviewTool()},
		ToolChoice:  "auto",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var issues []review.RawIssue
	err = retryWithBackoff(ctx, c.retries, func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == 429 {
			return &rateLimitError{}
		}
		if resp.StatusCode >= 500 {
			return &serverError{statusCode: resp.StatusCode, body: string(respBody)}
		}
		if resp.StatusCode != 200 {
			return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(respBody))
		}

		issues, err = extractIssues(respBody)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// extractIssues pulls the reviews array out of the first reviewText tool
// call in the response.
func extractIssues(respBody []byte) ([]review.RawIssue, error) {
	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, ErrNoResult
	}

	for _, call := range result.Choices[0].Message.ToolCalls {
		if call.Function.Name != toolName {
			continue
		}
		var args reviewArguments
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("parsing %s arguments: %w", toolName, err)
		}
		return args.Reviews, nil
	}
	return nil, ErrNoResult
}

// URL returns the resolved endpoint, for logging.
func (c *Client) URL() string { return c.url }
