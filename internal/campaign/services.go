package campaign

import (
	"context"
	"slices"
)

// Criteria is the audience query derived from targeting.
type Criteria struct {
	Titles            []string `json:"titles"`
	Locations         []string `json:"locations"`
	Seniorities       []string `json:"seniorities"`
	CompanySizes      []string `json:"companySizes"`
	Industries        []string `json:"industries"`
	PriorityCompanies []string `json:"priorityCompanies"`
}

// Ready reports whether the criteria are specific enough to estimate.
func (c Criteria) Ready() bool {
	return len(c.Titles) > 0 && len(c.Locations) > 0
}

// Equal reports whether c and o describe the same query.
func (c Criteria) Equal(o Criteria) bool {
	return slices.Equal(c.Titles, o.Titles) &&
		slices.Equal(c.Locations, o.Locations) &&
		slices.Equal(c.Seniorities, o.Seniorities) &&
		slices.Equal(c.CompanySizes, o.CompanySizes) &&
		slices.Equal(c.Industries, o.Industries) &&
		slices.Equal(c.PriorityCompanies, o.PriorityCompanies)
}

// Estimate is the reachable audience for some criteria.
type Estimate struct {
	TotalAvailable int `json:"totalAvailable"`
}

// TemplateRequest asks the generation service for whole templates.
type TemplateRequest struct {
	Tone      Tone     `json:"tone"`
	Language  Language `json:"language"`
	KeyPoints string   `json:"keyPoints,omitempty"`
	Goal      Goal     `json:"goal"`
	Count     int      `json:"count"`
}

// VariantRequest asks the generation service for one variant. Existing
// holds the other filled entries of the section so the result differs.
type VariantRequest struct {
	Kind     Section  `json:"kind"`
	Tone     Tone     `json:"tone"`
	Language Language `json:"language"`
	Goal     Goal     `json:"goal"`
	Existing []string `json:"existingVariants"`
}

// MailboxProvider reports the outreach mailbox connection. The OAuth
// handshake itself happens elsewhere.
type MailboxProvider interface {
	Status(ctx context.Context) (MailboxConnection, error)
	Disconnect(ctx context.Context) error
}

// Generator writes message content.
type Generator interface {
	GenerateTemplates(ctx context.Context, req TemplateRequest) ([]TemplateContent, error)
	GenerateVariant(ctx context.Context, req VariantRequest) (string, error)
}

// AudienceService estimates how many contacts match some criteria.
type AudienceService interface {
	Estimate(ctx context.Context, criteria Criteria) (Estimate, error)
}

// RecordStore persists assembled campaigns. It is append-only.
type RecordStore interface {
	CreateCampaignRecord(ctx context.Context, record *Record) (string, error)
}

// AttachmentCatalog lists the attachments a user can pick from.
type AttachmentCatalog interface {
	Attachments(ctx context.Context) ([]Attachment, error)
}

// PlaceSuggester completes partially typed locations.
type PlaceSuggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}
