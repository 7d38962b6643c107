package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleListCampaigns lists stored campaigns, one per line.
func (s *Server) handleListCampaigns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var mode campaign.GenerationMode
	if raw, ok := request.GetArguments()["mode"].(string); ok && raw != "" {
		m, err := campaign.ParseMode(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mode = m
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list campaigns: %v", err)), nil
	}

	var lines []string
	for _, rec := range records {
		if mode != campaign.ModeUnset && rec.Mode != mode {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s [%s] %s: %s in %s",
			rec.ID,
			rec.CreatedAt.Format("2006-01-02"),
			rec.Mode,
			rec.Name,
			strings.Join(rec.Targeting.Titles, ", "),
			strings.Join(rec.Targeting.Locations, ", "),
		))
	}

	if len(lines) == 0 {
		return mcp.NewToolResultText("No campaigns"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// handleGetCampaign returns one record as indented JSON.
func (s *Server) handleGetCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, errResult := s.lookup(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	output, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal campaign: %v", err)), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}

// handlePreviewCampaign renders the message a recipient would get.
func (s *Server) handlePreviewCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, errResult := s.lookup(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	switch rec.Mode {
	case campaign.ModeTemplate:
		if rec.Template == nil {
			return mcp.NewToolResultError("campaign has no template"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Subject: %s\n\n%s", rec.Template.Subject, rec.Template.Body)), nil

	case campaign.ModeABTest:
		if rec.Variants == nil {
			return mcp.NewToolResultError("campaign has no variants"), nil
		}
		args := request.GetArguments()
		// JSON numbers come as float64
		index := func(name string) int {
			if v, ok := args[name].(float64); ok {
				return int(v)
			}
			return 0
		}
		text, err := rec.Variants.Preview(index("hook"), index("body"), index("cta"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil

	default:
		return mcp.NewToolResultText("Messages for this campaign are written per recipient; there is nothing to preview."), nil
	}
}

// lookup loads the campaign named by the "id" argument. A non-nil result
// is the error to return to the caller.
func (s *Server) lookup(ctx context.Context, request mcp.CallToolRequest) (*campaign.Record, *mcp.CallToolResult) {
	id, ok := request.GetArguments()["id"].(string)
	if !ok || id == "" {
		return nil, mcp.NewToolResultError("missing or invalid 'id' parameter")
	}

	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("campaign %s not found", id))
	}
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to load campaign: %v", err))
	}
	return rec, nil
}
