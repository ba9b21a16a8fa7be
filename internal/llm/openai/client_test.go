package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuparse/invoice-parser/internal/common"
	"github.com/docuparse/invoice-parser/internal/llm"
)

func chatResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestCompleteTextMode(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = io.WriteString(w, chatResponse(`  {"a": 1}  `))
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "test-model"}, nil)
	out, err := c.Complete(context.Background(), llm.Request{
		System:      "sys",
		Prompt:      "extract this",
		Temperature: 0.1,
		MaxTokens:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, out)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "sys", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "extract this", msgs[1].(map[string]any)["content"])
}

func TestCompleteVisionMode(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = io.WriteString(w, chatResponse("{}"))
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "text-model", VisionModel: "vision-model"}, nil)
	_, err := c.Complete(context.Background(), llm.Request{
		Prompt:   "extract this",
		ImagePNG: []byte("fake png"),
	})
	require.NoError(t, err)

	// Image requests route to the vision model with a data-URL block.
	assert.Equal(t, "vision-model", gotBody["model"])
	user := gotBody["messages"].([]any)[1].(map[string]any)
	blocks := user["content"].([]any)
	require.Len(t, blocks, 2)
	assert.Equal(t, "text", blocks[0].(map[string]any)["type"])
	imageBlock := blocks[1].(map[string]any)
	assert.Equal(t, "image_url", imageBlock["type"])
	url := imageBlock["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "not json")
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"choices": []}`)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := NewClient(Config{APIKey: "sk-test", BaseURL: ts.URL}, nil)
			_, err := c.Complete(context.Background(), llm.Request{Prompt: "x"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrAIService))
		})
	}
}
