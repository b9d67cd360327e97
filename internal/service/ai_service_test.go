package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dental-clinic-api/config"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(baseURL, apiKey string) AIClient {
	return NewGeminiClient(config.AIConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, testLogger())
}

// geminiText wraps text in the provider's candidate envelope
func geminiText(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	}
}

func TestGeminiClientDisabledWithoutKey(t *testing.T) {
	client := newTestClient("http://localhost:1", "")

	assert.False(t, client.Enabled())

	_, err := client.SummarizePatientNotes(context.Background(), "notes")
	assert.ErrorIs(t, err, ErrAIDisabled)

	_, err = client.DraftProcedures(context.Background(), "notes")
	assert.ErrorIs(t, err, ErrAIDisabled)
}

func TestSummarizePatientNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "contents")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiText("- Allergic to penicillin\n- Anxious patient"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "test-key")
	summary, err := client.SummarizePatientNotes(context.Background(), "some notes")
	require.NoError(t, err)
	assert.Contains(t, summary, "penicillin")
}

func TestDraftProcedures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		genCfg, ok := req["generationConfig"].(map[string]interface{})
		require.True(t, ok, "drafting must request structured output")
		assert.Equal(t, "application/json", genCfg["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiText(`[{"description":"Root Canal - Tooth #12","cost":1100},{"description":"Crown","cost":800}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "test-key")
	drafts, err := client.DraftProcedures(context.Background(), "sensitivity in tooth 12")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Root Canal - Tooth #12", drafts[0].Description)
	assert.True(t, drafts[0].Cost.Equal(decimal.NewFromInt(1100)))
}

func TestDraftProceduresHTTPErrorIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "test-key")
	_, err := client.DraftProcedures(context.Background(), "notes")
	assert.ErrorIs(t, err, ErrAIRequestFailed)
}

func TestDraftProceduresMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "here is your treatment plan:"},
		{name: "missing description", text: `[{"description":"","cost":100}]`},
		{name: "negative cost", text: `[{"description":"Filling","cost":-5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(geminiText(tt.text))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL, "test-key")
			_, err := client.DraftProcedures(context.Background(), "notes")
			assert.ErrorIs(t, err, ErrAIMalformedResponse)
		})
	}
}

func TestGenerateEmptyCandidatesIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "test-key")
	_, err := client.SummarizePatientNotes(context.Background(), "notes")
	assert.ErrorIs(t, err, ErrAIMalformedResponse)
}
