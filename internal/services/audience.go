package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/campaignr/internal/campaign"
)

// Estimate returns the number of contacts matching criteria. Calls are
// paced by the client's estimate rate limit.
func (c *Client) Estimate(ctx context.Context, criteria campaign.Criteria) (campaign.Estimate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return campaign.Estimate{}, fmt.Errorf("estimate rate limit: %w", err)
	}

	var est campaign.Estimate
	if err := c.request(ctx, http.MethodPost, "/api/v1/audience/estimate", criteria, &est); err != nil {
		return campaign.Estimate{}, fmt.Errorf("estimating audience: %w", err)
	}
	return est, nil
}
