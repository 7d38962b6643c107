package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding campaign records.
	StreamName = "campaignr_campaigns"

	subjectPrefix = "campaignr.campaigns"
)

// SubjectForCampaign returns the subject a campaign record is stored under.
// Example: "campaignr.campaigns.d1ke5v2s0t8g00a4hvmg"
func SubjectForCampaign(id string) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, id)
}

// AllCampaigns is the wildcard subject matching every campaign record.
func AllCampaigns() string {
	return subjectPrefix + ".*"
}

// SetupStream creates or updates the campaign stream. Records are
// append-only: deletes and purges are refused by the server.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{AllCampaigns()},
		Storage:    jetstream.FileStorage,
		DenyDelete: true,
		DenyPurge:  true,
	})
}
