package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandboost/leadmanager/internal/lead"
)

// Store is the persistence surface the pipeline needs: the dedup query and
// the insert.
type Store interface {
	ExistsSince(ctx context.Context, relatedID uuid.UUID, typ Type, since time.Time) (bool, error)
	Insert(ctx context.Context, n *Notification) (*Notification, error)
}

// LeadSource supplies the leads eligible for a sweep: pending due date
// present, payment not fully settled.
type LeadSource interface {
	DueForEvaluation(ctx context.Context) ([]lead.Lead, error)
}

// Evaluator runs the classify → gate → record → broadcast pipeline. One
// instance serves both the scheduled sweep and the post-create/update path.
type Evaluator struct {
	leads  LeadSource
	store  Store
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewEvaluator wires the pipeline. The clock defaults to time.Now.
func NewEvaluator(leads LeadSource, store Store, pub Publisher, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		leads:  leads,
		store:  store,
		pub:    pub,
		logger: logger,
		now:    time.Now,
	}
}

// EvaluateLead runs the pipeline for a single lead. Returns the created
// notification, or nil when the classifier produced nothing or an equivalent
// notification already exists today. Publish failures are logged and do not
// undo the already-persisted notification.
//
// The dedup check and the insert are not atomic: two near-simultaneous
// evaluations of the same lead can both pass the gate. The back office
// tolerates the rare duplicate.
func (e *Evaluator) EvaluateLead(ctx context.Context, l lead.Lead) (*Notification, error) {
	now := e.now()

	c, ok := Classify(ViewOf(l), now)
	if !ok {
		return nil, nil
	}

	exists, err := e.store.ExistsSince(ctx, l.ID, c.Type, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("dedup check: %w", err)
	}
	if exists {
		return nil, nil
	}

	n := &Notification{
		Message:   c.Message,
		Type:      c.Type,
		RelatedID: &l.ID,
		DueDate:   l.PendingAmountDueDate,
		Amount:    &l.TotalServiceFeesCharged,
	}
	saved, err := e.store.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("record notification: %w", err)
	}

	alert := PaymentAlert{
		Message:        saved.Message,
		LeadID:         l.ID,
		DueDate:        l.PendingAmountDueDate,
		NotificationID: saved.ID,
		Type:           saved.Type,
		CompanyName:    l.CompanyName,
		Amount:         l.TotalServiceFeesCharged,
	}
	if err := e.pub.Publish(ctx, PaymentChannel, PaymentEvent, alert); err != nil {
		e.logger.Warn("payment alert publish failed",
			"lead_id", l.ID, "type", saved.Type, "error", err)
	}

	e.logger.Info("Payment notification created",
		"company", l.CompanyName, "type", saved.Type, "message", saved.Message)
	return saved, nil
}

// RecordLeadCreated persists and broadcasts the lifecycle notification for a
// freshly created lead. No dedup gate: lead creation happens once.
func (e *Evaluator) RecordLeadCreated(ctx context.Context, l lead.Lead) (*Notification, error) {
	n := &Notification{
		Message:   fmt.Sprintf("New lead created for %s by %s", l.CompanyName, l.BDAName),
		Type:      TypeLeadCreated,
		RelatedID: &l.ID,
	}
	saved, err := e.store.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("record lead-created notification: %w", err)
	}

	alert := LeadAlert{
		Message:        saved.Message,
		LeadID:         l.ID,
		NotificationID: saved.ID,
	}
	if err := e.pub.Publish(ctx, LeadChannel, LeadCreatedEvent, alert); err != nil {
		e.logger.Warn("new-lead publish failed", "lead_id", l.ID, "error", err)
	}
	return saved, nil
}

// --------------------------------------------------------------------------
// Batch sweep
// --------------------------------------------------------------------------

// SweepResult aggregates one pass over all eligible leads.
type SweepResult struct {
	LeadsChecked int
	Created      int
	Skipped      int
	Errors       []string
	Duration     time.Duration
}

// Summary renders a one-line report for logs and the CLI.
func (r SweepResult) Summary() string {
	s := fmt.Sprintf("checked=%d created=%d skipped=%d duration=%s",
		r.LeadsChecked, r.Created, r.Skipped, r.Duration.Round(time.Millisecond))
	if len(r.Errors) > 0 {
		s += fmt.Sprintf(" errors=%d [%s]", len(r.Errors), strings.Join(r.Errors, "; "))
	}
	return s
}

// RunSweep evaluates every eligible lead in turn. One lead's failure is
// logged and recorded in the result; it never aborts the rest of the batch.
func (e *Evaluator) RunSweep(ctx context.Context) SweepResult {
	start := time.Now()
	var result SweepResult

	leads, err := e.leads.DueForEvaluation(ctx)
	if err != nil {
		e.logger.Error("payment sweep: lead query failed", "error", err)
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	for _, l := range leads {
		result.LeadsChecked++

		n, err := e.EvaluateLead(ctx, l)
		if err != nil {
			e.logger.Warn("payment sweep: lead evaluation failed",
				"lead_id", l.ID, "company", l.CompanyName, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("lead %s: %v", l.ID, err))
			continue
		}
		if n != nil {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	result.Duration = time.Since(start)
	e.logger.Info("Payment sweep complete", "summary", result.Summary())
	return result
}
