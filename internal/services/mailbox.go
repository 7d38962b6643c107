package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/campaignr/internal/campaign"
)

// Status reports whether an outreach mailbox is connected.
func (c *Client) Status(ctx context.Context) (campaign.MailboxConnection, error) {
	var conn campaign.MailboxConnection
	if err := c.request(ctx, http.MethodGet, "/api/v1/mailbox", nil, &conn); err != nil {
		return campaign.MailboxConnection{}, fmt.Errorf("mailbox status: %w", err)
	}
	if !conn.Connected {
		conn.Address = ""
	}
	return conn, nil
}

// Disconnect revokes the mailbox connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.request(ctx, http.MethodDelete, "/api/v1/mailbox", nil, nil); err != nil {
		return fmt.Errorf("disconnecting mailbox: %w", err)
	}
	return nil
}
