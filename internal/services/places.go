package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// minPlaceQuery is the shortest query sent for suggestions.
const minPlaceQuery = 2

// Suggest returns place names completing query. Short queries return
// nothing without a request.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minPlaceQuery {
		return nil, nil
	}

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	path := "/api/v1/places?" + url.Values{"q": {query}}.Encode()
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("place suggestions: %w", err)
	}
	return resp.Suggestions, nil
}
