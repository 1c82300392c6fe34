package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/sse"
	"google.golang.org/genai"
)

// Client implements [genstream.Provider] for the Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     genstream.Logger
	maxBacklog int
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model used when a request does not name one.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithLogger sets the logger used by the client and its streams.
func WithLogger(l genstream.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxBacklog bounds the per-branch buffer of every stream the client
// opens. See [WithStreamMaxBacklog].
func WithMaxBacklog(n int) Option {
	return func(c *Client) { c.maxBacklog = n }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: http.DefaultClient,
		logger:     genstream.NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = genstream.NopLogger{}
	}
	return c
}

// Stream sends a streaming request and returns a [genstream.Stream] over the
// server-sent response body.
func (c *Client) Stream(ctx context.Context, req genstream.Request) (genstream.Stream, error) {
	resp, err := c.do(ctx, req, streamMethod)
	if err != nil {
		return nil, err
	}
	return NewStream(resp.Body,
		WithStreamLogger(c.logger),
		WithStreamMaxBacklog(c.maxBacklog),
	), nil
}

// Generate sends a non-streaming request and returns the enhanced response.
func (c *Client) Generate(ctx context.Context, req genstream.Request) (*genstream.EnhancedResponse, error) {
	resp, err := c.do(ctx, req, generateMethod)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	r, err := sse.ParseFrame(string(body))
	if err != nil {
		return nil, err
	}
	return genstream.Enhance(r, c.logger), nil
}

// do validates and sends req to the given model method. On success the
// caller owns the response body.
func (c *Client) do(ctx context.Context, req genstream.Request, method string) (*http.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	body, err := buildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	endpoint := c.endpoint(model, method)
	c.logger.Debug(fmt.Sprintf("gemini: POST %s", endpoint))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		err := parseHTTPError(resp, endpoint)
		c.logger.Error(err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) endpoint(model, method string) string {
	u := fmt.Sprintf("%s/%s/models/%s:%s", c.baseURL, apiVersion, url.PathEscape(model), method)
	if method == streamMethod {
		u += "?alt=sse"
	}
	return u
}

func buildRequestBody(req genstream.Request) ([]byte, error) {
	apiReq := apiRequest{
		Contents:       ConvertContents(req.Contents),
		Tools:          ConvertTools(req.Tools),
		SafetySettings: convertSafetySettings(req.SafetySettings),
	}
	if req.SystemInstruction != "" {
		apiReq.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	cfg := apiGenerationConfig{
		MaxOutputTokens: req.MaxOutputTokens,
		Temperature:     req.Temperature,
		CandidateCount:  req.CandidateCount,
	}
	if req.IncludeThoughts {
		cfg.ThinkingConfig = &genai.ThinkingConfig{IncludeThoughts: true}
	}
	if cfg != (apiGenerationConfig{}) {
		apiReq.GenerationConfig = &cfg
	}

	return sonic.ConfigStd.Marshal(apiReq)
}

// ConvertContents converts genstream Contents to genai Contents.
// Exported for testing.
func ConvertContents(contents []genstream.Content) []*genai.Content {
	result := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		result = append(result, &genai.Content{
			Role:  c.Role,
			Parts: convertParts(c.Parts),
		})
	}
	return result
}

func convertParts(parts []genstream.Part) []*genai.Part {
	result := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		gp := &genai.Part{Text: p.Text, Thought: p.Thought}
		if p.ThoughtSignature != "" {
			// Signatures travel base64-encoded; genai re-encodes the bytes.
			if sig, err := base64.StdEncoding.DecodeString(p.ThoughtSignature); err == nil {
				gp.ThoughtSignature = sig
			}
		}
		if fc := p.FunctionCall; fc != nil {
			gp.FunctionCall = &genai.FunctionCall{ID: fc.ID, Name: fc.Name, Args: fc.Args}
		}
		if fr := p.FunctionResponse; fr != nil {
			gp.FunctionResponse = &genai.FunctionResponse{ID: fr.ID, Name: fr.Name, Response: fr.Response}
		}
		if d := p.InlineData; d != nil {
			data, err := base64.StdEncoding.DecodeString(d.Data)
			if err != nil {
				data = []byte(d.Data)
			}
			gp.InlineData = &genai.Blob{MIMEType: d.MimeType, Data: data}
		}
		result = append(result, gp)
	}
	return result
}

// ConvertTools converts genstream Tools to genai Tools.
// Exported for testing.
func ConvertTools(tools []genstream.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		var schema map[string]any
		if len(t.Parameters) > 0 {
			_ = sonic.ConfigStd.Unmarshal(t.Parameters, &schema)
		}
		decls[i] = &genai.FunctionDeclaration{
			Name:                 t.Name,
			Description:          t.Description,
			ParametersJsonSchema: schema,
		}
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func convertSafetySettings(settings []genstream.SafetySetting) []*genai.SafetySetting {
	if len(settings) == 0 {
		return nil
	}
	result := make([]*genai.SafetySetting, len(settings))
	for i, s := range settings {
		result[i] = &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		}
	}
	return result
}

// parseHTTPError builds a fetch error from a non-2xx response.
func parseHTTPError(resp *http.Response, endpoint string) error {
	prefix := fmt.Sprintf("error fetching from %s: [%d %s]", endpoint, resp.StatusCode, http.StatusText(resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &genstream.Error{Code: genstream.ErrorCodeFetchError, Message: prefix, Err: err}
	}
	var apiErr apiErrorResponse
	if err := sonic.ConfigStd.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return &genstream.Error{
			Code:    genstream.ErrorCodeFetchError,
			Message: prefix + " " + string(bytes.TrimSpace(body)),
		}
	}
	return &genstream.Error{
		Code:    genstream.ErrorCodeFetchError,
		Message: prefix + " " + apiErr.Error.Message,
	}
}
