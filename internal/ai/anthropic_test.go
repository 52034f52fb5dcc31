package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *anthropicClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &anthropicClient{
		apiKey:     "test-key",
		model:      "test-model",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerateCoverLetter(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeaders http.Header

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Sehr geehrte Damen und Herren,"},
			},
		})
	})

	letter, err := client.GenerateCoverLetter(context.Background(), CoverLetterInput{
		JobDescription: "Go backend development",
		CompanyName:    "Siemens",
		PositionTitle:  "Backend Engineer",
		ApplicantName:  "Alice Anders",
		ApplicantEmail: "alice@example.com",
		ApplicantPhone: "+49 170 1234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sehr geehrte Damen und Herren,", letter)

	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 2000, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Siemens")
	assert.Contains(t, gotReq.Messages[0].Content, "Backend Engineer")
	assert.Contains(t, gotReq.Messages[0].Content, "Alice Anders")
}

func TestRefineCoverLetter(t *testing.T) {
	var gotReq anthropicRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "polished letter"},
			},
		})
	})

	letter, err := client.RefineCoverLetter(context.Background(), "rough draft", "make it formal")
	require.NoError(t, err)
	assert.Equal(t, "polished letter", letter)

	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "rough draft")
	assert.Contains(t, gotReq.Messages[0].Content, "make it formal")
}

func TestCompleteErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
		})

		_, err := client.RefineCoverLetter(context.Background(), "draft", "improve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("error payload with 200 status", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad model"}}`))
		})

		_, err := client.RefineCoverLetter(context.Background(), "draft", "improve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad model")
	})

	t.Run("no text content", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"content":[]}`))
		})

		_, err := client.RefineCoverLetter(context.Background(), "draft", "improve")
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
		client.baseURL = "http://127.0.0.1:1"

		_, err := client.RefineCoverLetter(context.Background(), "draft", "improve")
		assert.Error(t, err)
	})
}

func TestBuildGeneratePrompt(t *testing.T) {
	base := CoverLetterInput{
		JobDescription: "Go development",
		CompanyName:    "Siemens",
		PositionTitle:  "Backend Engineer",
		ApplicantName:  "Alice Anders",
		ApplicantEmail: "alice@example.com",
		ApplicantPhone: "+49 170 1234567",
	}

	t.Run("optional sections appear only when set", func(t *testing.T) {
		bare := buildGeneratePrompt(base)
		assert.NotContains(t, bare, "Relevant Experience")
		assert.NotContains(t, bare, "Key Skills")

		withExp := base
		withExp.Experience = "5 years of Go"
		withExp.Skills = "Go, PostgreSQL"
		full := buildGeneratePrompt(withExp)
		assert.Contains(t, full, "5 years of Go")
		assert.Contains(t, full, "Go, PostgreSQL")
	})

	t.Run("letter follows German business conventions", func(t *testing.T) {
		prompt := buildGeneratePrompt(base)
		assert.Contains(t, prompt, "Anschreiben")
		assert.True(t, strings.Contains(prompt, "Sie"))
		assert.Contains(t, prompt, "Mit freundlichen Grüßen")
	})
}
