package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the campaign tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_campaigns",
			mcp.WithDescription("List stored outreach campaigns, oldest first"),
			mcp.WithString("mode",
				mcp.Description("Only list campaigns with this generation mode"),
				mcp.Enum("template", "abtest", "auto"),
			),
		),
		s.handleListCampaigns,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_campaign",
			mcp.WithDescription("Get the full configuration of one campaign as JSON"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Campaign ID as returned by list_campaigns"),
			),
		),
		s.handleGetCampaign,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("preview_campaign",
			mcp.WithDescription("Render one hook/body/CTA combination of an A/B test campaign, or the template of a template campaign"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Campaign ID"),
			),
			mcp.WithNumber("hook", mcp.Description("Hook index, 0-based (default 0)")),
			mcp.WithNumber("body", mcp.Description("Body index, 0-based (default 0)")),
			mcp.WithNumber("cta", mcp.Description("CTA index, 0-based (default 0)")),
		),
		s.handlePreviewCampaign,
	)
}
