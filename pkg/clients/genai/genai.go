// Package genai wraps the generative language API used for the dashboard's
// assistant chat, egg-production prediction and text-to-speech features. The
// remote service is treated as opaque: request in, single reply out, no
// retries.
package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 30 * time.Second
)

// ErrRateLimited indicates the remote API rejected the call with HTTP 429.
// Callers surface it as a dedicated user-facing message.
var ErrRateLimited = errors.New("genai: rate limited")

// Client defines the generative API operations the dashboard relies on.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Predict(ctx context.Context, req PredictionRequest) (Prediction, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// ChatMessage is one turn of the conversation history. ImageData carries an
// optional base64 payload attached to the turn.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "model"
	Text      string `json:"text,omitempty"`
	ImageData string `json:"imageData,omitempty"`
	ImageMIME string `json:"imageMime,omitempty"`
}

// ChatRequest carries the conversation plus optional structured farm data
// appended to the system prompt as JSON context.
type ChatRequest struct {
	Messages     []ChatMessage
	SystemPrompt string
	FarmContext  any
}

// PredictionRequest describes the husbandry parameters behind an egg
// production estimate.
type PredictionRequest struct {
	FlockSize        int     `json:"flock_size"`
	AgeMonths        float64 `json:"age_months"`
	FeedGramsPerBird float64 `json:"feed_grams_per_bird"`
	CageSystem       string  `json:"cage_system"`
	Notes            string  `json:"notes,omitempty"`
}

// Prediction is the structured estimate returned by the model.
type Prediction struct {
	EstimatedEggs float64 `json:"estimated_eggs"`
	Rationale     string  `json:"rationale"`
}

// Options tunes the client; zero values fall back to defaults.
type Options struct {
	BaseURL   string
	ChatModel string
	TTSModel  string
}

type apiClient struct {
	httpClient *resty.Client
	chatModel  string
	ttsModel   string
}

// NewClient creates a configured generative API client.
func NewClient(apiKey string, opts Options) Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	chatModel := opts.ChatModel
	if chatModel == "" {
		chatModel = "gemini-2.0-flash"
	}
	ttsModel := opts.TTSModel
	if ttsModel == "" {
		ttsModel = "gemini-2.5-flash-preview-tts"
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("content-type", "application/json").
		SetTimeout(requestTimeout)

	return &apiClient{
		httpClient: client,
		chatModel:  chatModel,
		ttsModel:   ttsModel,
	}
}

type generateRequest struct {
	SystemInstruction *content        `json:"system_instruction,omitempty"`
	Contents          []content       `json:"contents"`
	GenerationConfig  *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateConfig struct {
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoice `json:"prebuiltVoiceConfig"`
}

type prebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Chat sends the conversation history and returns the model's text reply.
func (c *apiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	system := req.SystemPrompt
	if req.FarmContext != nil {
		contextJSON, err := json.Marshal(req.FarmContext)
		if err != nil {
			return "", fmt.Errorf("encode farm context: %w", err)
		}
		system = system + "\n\nCurrent farm data (JSON):\n" + string(contextJSON)
	}

	body := generateRequest{Contents: make([]content, 0, len(req.Messages))}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	for _, msg := range req.Messages {
		var parts []part
		if msg.Text != "" {
			parts = append(parts, part{Text: msg.Text})
		}
		if msg.ImageData != "" {
			parts = append(parts, part{InlineData: &inlineData{
				MimeType: msg.ImageMIME,
				Data:     msg.ImageData,
			}})
		}
		if len(parts) == 0 {
			continue
		}
		body.Contents = append(body.Contents, content{Role: msg.Role, Parts: parts})
	}

	resp, err := c.generate(ctx, c.chatModel, body)
	if err != nil {
		return "", err
	}

	text := firstText(resp)
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// Predict asks the model for a structured egg production estimate.
func (c *apiClient) Predict(ctx context.Context, req PredictionRequest) (Prediction, error) {
	paramsJSON, err := json.Marshal(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("encode prediction params: %w", err)
	}

	prompt := fmt.Sprintf(`You are an expert in duck husbandry. Estimate the daily egg production for a flock with these parameters:

%s

Respond with ONLY a JSON object of this exact shape:
{"estimated_eggs": (number), "rationale": "short explanation of the estimate"}`, string(paramsJSON))

	body := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generateConfig{ResponseMimeType: "application/json"},
	}

	resp, err := c.generate(ctx, c.chatModel, body)
	if err != nil {
		return Prediction{}, err
	}

	text := stripCodeFences(firstText(resp))
	var prediction Prediction
	if err := json.Unmarshal([]byte(text), &prediction); err != nil {
		return Prediction{}, fmt.Errorf("unmarshal prediction %q: %w", text, err)
	}
	return prediction, nil
}

// Synthesize converts text to playable audio using the given voice id.
func (c *apiClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: text}}}},
		GenerationConfig: &generateConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{PrebuiltVoiceConfig: prebuiltVoice{VoiceName: voice}},
			},
		},
	}

	resp, err := c.generate(ctx, c.ttsModel, body)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				audio, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode audio payload: %w", err)
				}
				return audio, nil
			}
		}
	}
	return nil, errors.New("no audio in response")
}

func (c *apiClient) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	result := new(generateResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(fmt.Sprintf("/models/%s:generateContent", model))
	if err != nil {
		return nil, fmt.Errorf("generative api call: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.IsError() {
		return nil, fmt.Errorf("generative api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(result.Candidates) == 0 {
		return nil, errors.New("no candidates in response")
	}

	return result, nil
}

func firstText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// stripCodeFences removes markdown fences some models wrap JSON output in.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
