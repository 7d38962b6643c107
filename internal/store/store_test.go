package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/nats"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	ns, err := nats.StartEmbeddedNATS(t.TempDir())
	if err != nil {
		t.Fatalf("failed to start NATS: %v", err)
	}
	t.Cleanup(ns.Shutdown)

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		t.Fatalf("failed to connect to NATS: %v", err)
	}
	t.Cleanup(nc.Close)

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		t.Fatalf("failed to create JetStream: %v", err)
	}

	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		t.Fatalf("failed to setup stream: %v", err)
	}

	return NewStore(js, stream)
}

func testRecord(name string, created time.Time) *campaign.Record {
	return &campaign.Record{
		Name: name,
		Goal: campaign.GoalJob,
		Targeting: campaign.TargetingBlock{
			Titles:    []string{"Backend Engineer"},
			Locations: []string{"Paris"},
		},
		Mailbox:   campaign.MailboxConnection{Connected: true, Address: "me@example.com"},
		Style:     campaign.DefaultMessageStyle(),
		Mode:      campaign.ModeABTest,
		Variants:  &campaign.VariantBlock{Hooks: []string{"Hi {{firstName}}"}, Bodies: []string{"b"}, CTAs: []string{"c"}},
		CreatedAt: created,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("create assigns an ID and Get returns the record", func(t *testing.T) {
		rec := testRecord("Paris backend", base)
		id, err := s.CreateCampaignRecord(ctx, rec)
		if err != nil {
			t.Fatalf("CreateCampaignRecord failed: %v", err)
		}
		if id == "" {
			t.Fatal("expected an ID")
		}
		if rec.ID != id {
			t.Errorf("expected record ID %q, got %q", id, rec.ID)
		}

		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "Paris backend" {
			t.Errorf("expected name 'Paris backend', got %q", got.Name)
		}
		if got.Variants == nil || got.Variants.Hooks[0] != "Hi {{firstName}}" {
			t.Errorf("variants not round-tripped: %+v", got.Variants)
		}
		if got.Template != nil {
			t.Error("expected no template on an A/B record")
		}
	})

	t.Run("create never reuses an ID", func(t *testing.T) {
		a, err := s.CreateCampaignRecord(ctx, testRecord("same", base.Add(time.Minute)))
		if err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		b, err := s.CreateCampaignRecord(ctx, testRecord("same", base.Add(2*time.Minute)))
		if err != nil {
			t.Fatalf("second create failed: %v", err)
		}
		if a == b {
			t.Errorf("expected distinct IDs, both were %q", a)
		}
	})

	t.Run("list returns records oldest first", func(t *testing.T) {
		records, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		for i := 1; i < len(records); i++ {
			if records[i].CreatedAt.Before(records[i-1].CreatedAt) {
				t.Errorf("records out of order at %d", i)
			}
		}
		if records[0].Name != "Paris backend" {
			t.Errorf("expected oldest record first, got %q", records[0].Name)
		}
	})

	t.Run("get unknown ID", func(t *testing.T) {
		for _, id := range []string{"not-an-id", "cv3a8kd6f1k0mqr7s5pg"} {
			_, err := s.Get(ctx, id)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
			}
		}
	})
}

func TestStoreListSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.js.Publish(ctx, nats.SubjectForCampaign("cv3a8kd6f1k0mqr7s5pg"), []byte("{not json")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if _, err := s.CreateCampaignRecord(ctx, testRecord("ok", time.Now())); err != nil {
		t.Fatalf("CreateCampaignRecord failed: %v", err)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "ok" {
		t.Errorf("expected only the valid record, got %d", len(records))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id, err := s.CreateCampaignRecord(ctx, testRecord("persisted", time.Now()))
	if err != nil {
		t.Fatalf("CreateCampaignRecord failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Records survive a restart.
	s, err = Open(ctx, dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Name != "persisted" {
		t.Errorf("expected 'persisted', got %q", got.Name)
	}
}
