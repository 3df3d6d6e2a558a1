package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	stdimage "image"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com/v1"
	openAIDefaultModel   = "gpt-image-1"
	openAIDefaultTimeout = 120 * time.Second
	openAIMaxImageBytes  = 32 << 20
)

type OpenAIOptions struct {
	APIKey       string
	BaseURL      string
	Model        string
	Organization string
	Size         string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// OpenAIProducer requests the infographic from the OpenAI image generation
// endpoint.
type OpenAIProducer struct {
	apiKey       string
	baseURL      string
	model        string
	organization string
	size         string
	prompt       string
	client       *http.Client
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON       string `json:"b64_json"`
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewOpenAIProducer(opts OpenAIOptions) (*OpenAIProducer, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = openAIDefaultModel
	}
	size := strings.TrimSpace(opts.Size)
	if size == "" {
		size = fmt.Sprintf("%dx%d", PosterWidth, PosterHeight)
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = openAIDefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &OpenAIProducer{
		apiKey:       apiKey,
		baseURL:      baseURL,
		model:        model,
		organization: strings.TrimSpace(opts.Organization),
		size:         size,
		prompt:       BuildPosterPrompt(DefaultPosterContent()),
		client:       client,
	}, nil
}

func (o *OpenAIProducer) Name() string { return "openai" }

// Model reports the resolved image model.
func (o *OpenAIProducer) Model() string { return o.model }

// Produce fulfils the Producer interface.
func (o *OpenAIProducer) Produce(ctx context.Context) (*Image, error) {
	payload := openAIImageRequest{
		Model:  o.model,
		Prompt: o.prompt,
		N:      1,
		Size:   o.size,
	}
	// gpt-image models always answer with base64 and reject response_format.
	if strings.HasPrefix(o.model, "dall-e") {
		payload.ResponseFormat = "b64_json"
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/images/generations", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", o.organization)
	}
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}
	var parsed openAIImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, ErrNoImage
	}
	first := parsed.Data[0]
	var data []byte
	switch {
	case first.B64JSON != "":
		data, err = base64.StdEncoding.DecodeString(first.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("openai: decode image: %w", err)
		}
	case first.URL != "":
		data, err = o.download(ctx, first.URL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNoImage
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}

	img := &Image{
		Data:   data,
		Format: http.DetectContentType(data),
		Prompt: o.prompt,
	}
	if cfg, _, err := stdimage.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}
	return img, nil
}

func (o *OpenAIProducer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openai: build download request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: download image: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai: download image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, openAIMaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("openai: read image: %w", err)
	}
	return data, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr openAIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("openai status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
	return fmt.Errorf("openai status %d", resp.StatusCode)
}

var _ Producer = (*OpenAIProducer)(nil)
