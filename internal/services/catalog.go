package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/campaignr/internal/campaign"
	"gopkg.in/yaml.v3"
)

// Attachments lists the documents stored for the user on the backend.
func (c *Client) Attachments(ctx context.Context) ([]campaign.Attachment, error) {
	var resp struct {
		Attachments []campaign.Attachment `json:"attachments"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/v1/attachments", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return resp.Attachments, nil
}

// FileCatalog is an attachment catalog kept in a local YAML file:
//
//	attachments:
//	  - id: cv-2026
//	    display_name: Resume 2026
//	    source_url: https://files.example.com/cv.pdf
//	    origin: upload
type FileCatalog struct {
	Path string
}

var _ campaign.AttachmentCatalog = FileCatalog{}

type catalogFile struct {
	Attachments []campaign.Attachment `yaml:"attachments"`
}

// Attachments reads the catalog file. A missing file is an empty catalog.
func (f FileCatalog) Attachments(_ context.Context) ([]campaign.Attachment, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", f.Path, err)
	}

	out := make([]campaign.Attachment, 0, len(file.Attachments))
	for i, att := range file.Attachments {
		if strings.TrimSpace(att.ID) == "" || strings.TrimSpace(att.DisplayName) == "" {
			return nil, fmt.Errorf("catalog %s: entry %d needs id and display_name", f.Path, i)
		}
		switch att.Origin {
		case campaign.OriginProfile, campaign.OriginBuilder, campaign.OriginUpload:
		case "":
			att.Origin = campaign.OriginUpload
		default:
			return nil, fmt.Errorf("catalog %s: entry %q has invalid origin %q", f.Path, att.ID, att.Origin)
		}
		out = append(out, att)
	}
	return out, nil
}
