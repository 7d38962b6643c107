package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: 5 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestEstimate(t *testing.T) {
	var got campaign.Criteria
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/audience/estimate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]int{"totalAvailable": 1234})
	})

	est, err := c.Estimate(context.Background(), campaign.Criteria{
		Titles:    []string{"SRE"},
		Locations: []string{"Lyon"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1234, est.TotalAvailable)
	assert.Equal(t, []string{"SRE"}, got.Titles)
	assert.Equal(t, []string{"Lyon"}, got.Locations)
}

func TestEstimateRateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, map[string]int{"totalAvailable": 1})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, EstimateRate: 0.01})
	criteria := campaign.Criteria{Titles: []string{"a"}, Locations: []string{"b"}}

	_, err := c.Estimate(context.Background(), criteria)
	require.NoError(t, err)

	// The next token is 100s away; a short deadline fails fast.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Estimate(ctx, criteria)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAPIError(t *testing.T) {
	t.Run("decodes error payload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "titles required"})
		})
		_, err := c.Estimate(context.Background(), campaign.Criteria{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "titles required", apiErr.Message)
		assert.Contains(t, err.Error(), "estimating audience")
	})

	t.Run("non-JSON body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})
		err := c.Disconnect(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Empty(t, apiErr.Message)
		assert.Equal(t, "HTTP 502", apiErr.Error())
	})
}

func TestGenerateTemplates(t *testing.T) {
	var got campaign.TemplateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generate/templates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"templates": []campaign.TemplateContent{
				{Subject: "Hello {{company}}", Body: "one"},
				{Subject: "Quick question", Body: "two"},
			},
		})
	})

	templates, err := c.GenerateTemplates(context.Background(), campaign.TemplateRequest{
		Tone:     campaign.ToneBold,
		Language: campaign.LanguageFR,
		Goal:     campaign.GoalInternship,
	})
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Hello {{company}}", templates[0].Subject)
	assert.Equal(t, 1, got.Count, "count defaults to 1")
	assert.Equal(t, campaign.LanguageFR, got.Language)
}

func TestGenerateTemplatesEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"templates": []any{}})
	})
	_, err := c.GenerateTemplates(context.Background(), campaign.TemplateRequest{Count: 3})
	require.Error(t, err)
}

func TestGenerateVariant(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generate/variant", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusOK, map[string]string{"text": "  Are you hiring?  "})
	})

	text, err := c.GenerateVariant(context.Background(), campaign.VariantRequest{
		Kind: campaign.SectionCTAs,
		Tone: campaign.ToneCasual,
	})
	require.NoError(t, err)
	assert.Equal(t, "Are you hiring?", text)
	assert.Equal(t, "cta", raw["kind"])
	assert.Equal(t, []any{}, raw["existingVariants"], "existing variants are always sent")
}

func TestGenerateVariantEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"text": " "})
	})
	_, err := c.GenerateVariant(context.Background(), campaign.VariantRequest{Kind: campaign.SectionHooks})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating hook")
}

func TestMailbox(t *testing.T) {
	connected := true
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/mailbox", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, campaign.MailboxConnection{Connected: connected, Address: "me@example.com"})
		case http.MethodDelete:
			connected = false
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	conn, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, campaign.MailboxConnection{Connected: true, Address: "me@example.com"}, conn)

	require.NoError(t, c.Disconnect(ctx))

	conn, err = c.Status(ctx)
	require.NoError(t, err)
	assert.False(t, conn.Connected)
	assert.Empty(t, conn.Address, "address is dropped when disconnected")
}

func TestSuggest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/v1/places", r.URL.Path)
		assert.Equal(t, "Par", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, map[string][]string{"suggestions": {"Paris, France", "Parma, Italy"}})
	})
	ctx := context.Background()

	got, err := c.Suggest(ctx, " P ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int32(0), calls.Load())

	got, err = c.Suggest(ctx, "Par")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris, France", "Parma, Italy"}, got)
}

func TestClientAttachments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"attachments": []campaign.Attachment{{ID: "a1", DisplayName: "CV", SourceURL: "https://x/cv.pdf", Origin: campaign.OriginBuilder}},
		})
	})
	atts, err := c.Attachments(context.Background())
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, campaign.OriginBuilder, atts[0].Origin)
}

func TestFileCatalog(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		atts, err := FileCatalog{Path: filepath.Join(dir, "nope.yml")}.Attachments(ctx)
		require.NoError(t, err)
		assert.Empty(t, atts)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte(`attachments:
  - id: cv-2026
    display_name: Resume 2026
    source_url: https://files.example.com/cv.pdf
    origin: profile
  - id: letter
    display_name: Cover letter
    source_url: https://files.example.com/letter.pdf
`), 0o644))

		atts, err := FileCatalog{Path: path}.Attachments(ctx)
		require.NoError(t, err)
		require.Len(t, atts, 2)
		assert.Equal(t, "Resume 2026", atts[0].DisplayName)
		assert.Equal(t, campaign.OriginProfile, atts[0].Origin)
		assert.Equal(t, campaign.OriginUpload, atts[1].Origin, "origin defaults to upload")
	})

	t.Run("invalid entries", func(t *testing.T) {
		tests := map[string]string{
			"missing id":     "attachments:\n  - display_name: x\n",
			"bad origin":     "attachments:\n  - id: a\n    display_name: x\n    origin: fax\n",
			"malformed yaml": "attachments: [",
		}
		for name, content := range tests {
			t.Run(name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "c.yml")
				require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
				_, err := FileCatalog{Path: path}.Attachments(ctx)
				require.Error(t, err)
			})
		}
	})
}
