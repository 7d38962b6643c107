// Package store persists assembled campaign records in an append-only
// JetStream stream.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/logger"
	"github.com/mark3labs/campaignr/internal/nats"
	natsserver "github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/xid"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("campaign not found")

var log = logger.Named("store")

// Store appends and reads campaign records. It never updates or deletes.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream

	// set by Open; nil when the caller owns the connection
	nc *natsgo.Conn
	ns *natsserver.Server
}

// NewStore creates a Store over an existing stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Open starts an embedded NATS server under dataDir and returns a Store
// that owns it. Close releases everything.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	ns, err := nats.StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, err
	}

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		_ = nats.Shutdown(nil, ns)
		return nil, err
	}

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream: %w", err)
	}

	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up stream: %w", err)
	}

	s := NewStore(js, stream)
	s.nc = nc
	s.ns = ns
	return s, nil
}

// Close shuts down the embedded server if the Store owns one.
func (s *Store) Close() error {
	if s.nc == nil && s.ns == nil {
		return nil
	}
	err := nats.Shutdown(s.nc, s.ns)
	s.nc, s.ns = nil, nil
	return err
}

// CreateCampaignRecord stores record under a new ID and returns it. The
// record's ID field is set only once the write is acknowledged.
func (s *Store) CreateCampaignRecord(ctx context.Context, record *campaign.Record) (string, error) {
	id := xid.New().String()

	stored := *record
	stored.ID = id
	data, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("marshaling campaign: %w", err)
	}

	ack, err := s.js.Publish(ctx, nats.SubjectForCampaign(id), data, jetstream.WithMsgID(id))
	if err != nil {
		log.Error("publishing campaign %s: %v", id, err)
		return "", fmt.Errorf("storing campaign: %w", err)
	}

	log.Debug("stored campaign %s (%q) at seq=%d", id, record.Name, ack.Sequence)
	record.ID = id
	return id, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*campaign.Record, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	msg, err := s.stream.GetLastMsgForSubject(ctx, nats.SubjectForCampaign(id))
	if err != nil {
		if errors.Is(err, jetstream.ErrMsgNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading campaign: %w", err)
	}

	var rec campaign.Record
	if err := json.Unmarshal(msg.Data, &rec); err != nil {
		return nil, fmt.Errorf("decoding campaign %s: %w", id, err)
	}
	return &rec, nil
}

// List returns every record, oldest first. Malformed entries are skipped.
func (s *Store) List(ctx context.Context) ([]*campaign.Record, error) {
	consumer, err := s.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{nats.AllCampaigns()},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	const batchSize = 500
	var records []*campaign.Record
	malformed := 0
	for {
		batch, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		n := 0
		for msg := range batch.Messages() {
			n++
			var rec campaign.Record
			if err := json.Unmarshal(msg.Data(), &rec); err != nil {
				malformed++
				log.Warn("skipping malformed record on %s: %v", msg.Subject(), err)
				continue
			}
			records = append(records, &rec)
		}

		if n < batchSize {
			break
		}
	}

	if malformed > 0 {
		log.Warn("skipped %d malformed records", malformed)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}
