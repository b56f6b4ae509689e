package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			}},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", Options{BaseURL: server.URL, ChatModel: "test-model", TTSModel: "test-tts"})
}

func TestChatReturnsReply(t *testing.T) {
	var captured generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(textResponse("Your ducks are doing well."))
	})

	reply, err := client.Chat(context.Background(), ChatRequest{
		Messages:     []ChatMessage{{Role: "user", Text: "How are my ducks?"}},
		SystemPrompt: "You are a farm assistant.",
		FarmContext:  map[string]int{"totalDucks": 120},
	})
	require.NoError(t, err)
	require.Equal(t, "Your ducks are doing well.", reply)

	require.Len(t, captured.Contents, 1)
	require.Equal(t, "user", captured.Contents[0].Role)
	require.NotNil(t, captured.SystemInstruction)
	require.Contains(t, captured.SystemInstruction.Parts[0].Text, `"totalDucks":120`)
}

func TestChatAttachesInlineImages(t *testing.T) {
	var captured generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(textResponse("Looks like a healthy duck."))
	})

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{
			Role:      "user",
			Text:      "What breed is this?",
			ImageData: "aGVsbG8=",
			ImageMIME: "image/jpeg",
		}},
	})
	require.NoError(t, err)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 2)
	require.NotNil(t, captured.Contents[0].Parts[1].InlineData)
	require.Equal(t, "image/jpeg", captured.Contents[0].Parts[1].InlineData.MimeType)
}

func TestChatRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: "user", Text: "hi"}},
	})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestPredictParsesStructuredEstimate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Models sometimes wrap JSON in markdown fences; the client must cope.
		payload := "```json\n{\"estimated_eggs\": 92.5, \"rationale\": \"peak laying age\"}\n```"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(textResponse(payload))
	})

	prediction, err := client.Predict(context.Background(), PredictionRequest{
		FlockSize:        120,
		AgeMonths:        8,
		FeedGramsPerBird: 160,
		CageSystem:       "battery-cage",
	})
	require.NoError(t, err)
	require.Equal(t, 92.5, prediction.EstimatedEggs)
	require.Equal(t, "peak laying age", prediction.Rationale)
}

func TestSynthesizeDecodesAudio(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x01}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "/models/test-tts:generateContent", r.URL.Path)
		require.NotNil(t, req.GenerationConfig)
		require.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		require.Equal(t, "Kore", req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]any{
						{"inlineData": map[string]any{
							"mimeType": "audio/wav",
							"data":     base64.StdEncoding.EncodeToString(audio),
						}},
					},
				}},
			},
		})
	})

	got, err := client.Synthesize(context.Background(), "Good morning, the ducks laid 80 eggs.", "Kore")
	require.NoError(t, err)
	require.Equal(t, audio, got)
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid argument"}}`))
	})

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: "user", Text: "hi"}},
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRateLimited)
}
