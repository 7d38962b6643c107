// Package estimator keeps a live audience estimate for the targeting being
// edited. Queries are debounced, and responses that arrive after a newer
// query was issued are dropped.
package estimator

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = logger.Named("estimator")

// DefaultDebounce is the quiet interval before a query is sent.
const DefaultDebounce = 800 * time.Millisecond

// tickMsg fires when the quiet interval of a scheduled query ends.
type tickMsg struct {
	est      *Estimator
	seq      uint64
	criteria campaign.Criteria
}

// resultMsg carries the outcome of an issued query.
type resultMsg struct {
	est      *Estimator
	seq      uint64
	estimate campaign.Estimate
	err      error
}

// Estimator is a bubbletea sub-component. All methods must be called from
// the owning model's Update.
type Estimator struct {
	svc      campaign.AudienceService
	debounce time.Duration
	parent   context.Context

	seq    uint64 // latest scheduled query
	issued uint64 // latest query sent; 0 when none is current
	cancel context.CancelFunc

	estimate *campaign.Estimate
	loading  bool
	err      error
	stopped  bool
}

// New creates an estimator. Requests derive from ctx; cancelling it aborts
// them just like Stop.
func New(ctx context.Context, svc campaign.AudienceService, debounce time.Duration) *Estimator {
	if debounce < 0 {
		debounce = DefaultDebounce
	}
	return &Estimator{svc: svc, debounce: debounce, parent: ctx}
}

// Schedule queues a query for criteria after the quiet interval,
// superseding any query scheduled before. Criteria without titles or
// locations reset the estimate to unknown and send nothing.
func (e *Estimator) Schedule(criteria campaign.Criteria) tea.Cmd {
	if e.stopped || e.svc == nil {
		return nil
	}

	e.seq++
	if !criteria.Ready() {
		e.cancelInflight()
		e.issued = 0
		e.estimate = nil
		e.loading = false
		e.err = nil
		return nil
	}

	seq := e.seq
	return tea.Tick(e.debounce, func(time.Time) tea.Msg {
		return tickMsg{est: e, seq: seq, criteria: criteria}
	})
}

// Update handles the estimator's own messages and ignores everything else.
func (e *Estimator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.est != e || e.stopped || msg.seq != e.seq {
			return nil
		}
		return e.issue(msg.seq, msg.criteria)

	case resultMsg:
		if msg.est != e {
			return nil
		}
		if e.stopped || msg.seq != e.issued {
			log.Debug("dropping stale estimate seq=%d (current=%d)", msg.seq, e.issued)
			return nil
		}
		e.loading = false
		e.cancelInflight()
		if msg.err != nil {
			log.Warn("audience estimate failed: %v", msg.err)
			e.err = msg.err
			return nil
		}
		est := msg.estimate
		e.estimate = &est
		e.err = nil
	}
	return nil
}

func (e *Estimator) issue(seq uint64, criteria campaign.Criteria) tea.Cmd {
	e.cancelInflight()
	ctx, cancel := context.WithCancel(e.parent)
	e.cancel = cancel
	e.issued = seq
	e.loading = true

	svc := e.svc
	log.Debug("estimating seq=%d titles=%v locations=%v", seq, criteria.Titles, criteria.Locations)
	return func() tea.Msg {
		est, err := svc.Estimate(ctx, criteria)
		return resultMsg{est: e, seq: seq, estimate: est, err: err}
	}
}

func (e *Estimator) cancelInflight() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Stop cancels in-flight work. Results that arrive later are ignored.
func (e *Estimator) Stop() {
	e.cancelInflight()
	e.stopped = true
	e.loading = false
}

// Estimate returns the last applied estimate. ok is false while unknown.
func (e *Estimator) Estimate() (est campaign.Estimate, ok bool) {
	if e.estimate == nil {
		return campaign.Estimate{}, false
	}
	return *e.estimate, true
}

// Loading reports whether a query is in flight.
func (e *Estimator) Loading() bool {
	return e.loading
}

// Err returns the error of the last failed query, cleared by the next
// success or reset.
func (e *Estimator) Err() error {
	return e.err
}

var printer = message.NewPrinter(language.English)

// String renders the estimate for display.
func (e *Estimator) String() string {
	est, ok := e.Estimate()
	switch {
	case e.loading && ok:
		return printer.Sprintf("~%d contacts (updating)", est.TotalAvailable)
	case e.loading:
		return "estimating..."
	case ok:
		return printer.Sprintf("~%d contacts", est.TotalAvailable)
	default:
		return "unknown"
	}
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Once runs a single query synchronously, for non-interactive callers.
func Once(ctx context.Context, svc campaign.AudienceService, criteria campaign.Criteria) (campaign.Estimate, error) {
	if !criteria.Ready() {
		return campaign.Estimate{}, fmt.Errorf("at least one title and one location are required")
	}
	return svc.Estimate(ctx, criteria)
}
