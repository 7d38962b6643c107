package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/campaignr/internal/campaign"
)

// GenerateTemplates asks the backend for req.Count subject/body pairs.
func (c *Client) GenerateTemplates(ctx context.Context, req campaign.TemplateRequest) ([]campaign.TemplateContent, error) {
	if req.Count <= 0 {
		req.Count = 1
	}

	var resp struct {
		Templates []campaign.TemplateContent `json:"templates"`
	}
	if err := c.request(ctx, http.MethodPost, "/api/v1/generate/templates", req, &resp); err != nil {
		return nil, fmt.Errorf("generating templates: %w", err)
	}
	if len(resp.Templates) == 0 {
		return nil, errors.New("generating templates: no templates returned")
	}
	return resp.Templates, nil
}

// GenerateVariant asks the backend for one hook, body or CTA that differs
// from req.Existing.
func (c *Client) GenerateVariant(ctx context.Context, req campaign.VariantRequest) (string, error) {
	if req.Existing == nil {
		req.Existing = []string{}
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := c.request(ctx, http.MethodPost, "/api/v1/generate/variant", req, &resp); err != nil {
		return "", fmt.Errorf("generating %s: %w", req.Kind.Singular(), err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("generating %s: empty result", req.Kind.Singular())
	}
	return text, nil
}
