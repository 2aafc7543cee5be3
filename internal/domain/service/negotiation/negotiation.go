package negotiation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/service/payment"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/contextx"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Step names as they appear in logs and the attempt journal.
const ownerCacheTTL = 5 * time.Minute

const (
	StepSendMessage     = "send_message"
	StepUpdateOffer     = "update_offer_status"
	StepCreateTx        = "create_transaction"
	StepValidatePayment = "validate_payment"
	StepCloseOffer      = "close_offer"
	StepLocalReject     = "local_reject"
)

type OfferClient interface {
	UpdateOfferStatus(ctx context.Context, startupID, offerID int64, status value.OfferStatus) (entity.Offer, error)
}

type TransactionClient interface {
	Create(ctx context.Context, tx entity.Transaction) (entity.Transaction, error)
}

type MessageClient interface {
	UserByID(ctx context.Context, userID int64) (entity.User, error)
	Send(ctx context.Context, senderID, receiverID int64, content string) (entity.Message, error)
}

type PaymentValidator interface {
	Validate(details payment.Details) error
}

// Journal receives finished attempts. Journaling is best-effort: a write
// failure is logged and never fails the workflow.
type Journal interface {
	Record(ctx context.Context, attempt entity.Attempt) error
}

// Service orchestrates the negotiation workflow. Each action is a fixed
// sequence of independent REST calls with NO shared transaction: a step
// failure stops the sequence but already completed steps stand, and the
// partial state is left for a later attempt to repair. Re-running an action
// creates duplicate server-side records on purpose.
type Service struct {
	offers       OfferClient
	transactions TransactionClient
	messages     MessageClient
	payments     PaymentValidator
	journal      Journal
	owners       *cache.Cache
	now          func() time.Time
}

func NewService(
	offers OfferClient,
	transactions TransactionClient,
	messages MessageClient,
	payments PaymentValidator,
) *Service {
	return &Service{
		offers:       offers,
		transactions: transactions,
		messages:     messages,
		payments:     payments,
		journal:      nil,
		owners:       cache.New(ownerCacheTTL, ownerCacheTTL),
		now:          time.Now,
	}
}

// resolveOwner maps a startup id to the user account that receives the
// negotiation message. The mapping is stable, so a short-lived cache saves a
// lookup on every repeated attempt against the same startup.
func (s *Service) resolveOwner(ctx context.Context, startupID int64) (entity.User, error) {
	key := strconv.FormatInt(startupID, 10)

	if cached, ok := s.owners.Get(key); ok {
		return cached.(entity.User), nil //nolint:forcetypeassert
	}

	owner, err := s.messages.UserByID(ctx, startupID)
	if err != nil {
		return entity.User{}, err
	}

	s.owners.Set(key, owner, cache.DefaultExpiration)

	return owner, nil
}

// WithJournal enables attempt journaling.
func (s *Service) WithJournal(journal Journal) *Service {
	s.journal = journal
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// StepError reports which workflow step failed. Completed prior steps are
// NOT rolled back; the attempt id locates the journal entry with the full
// step trace.
type StepError struct {
	Step      string
	AttemptID string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("negotiation step %s failed (attempt %s): %v", e.Step, e.AttemptID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type NegotiateParams struct {
	Offer          entity.Offer
	InvestorID     int64
	InvestorUserID int64
	CounterAmount  float64
	CounterEquity  float64
	Message        string
}

// Result is the outcome of one workflow attempt. Offer and Transaction are
// only meaningful for the steps that completed.
type Result struct {
	AttemptID   string
	Offer       entity.Offer
	Transaction entity.Transaction
	Steps       []entity.AttemptStep
}

// Negotiate runs the counter-offer sequence: chat message to the startup
// owner, offer to NEGOTIATING, then a NEGOTIATION transaction row. The three
// calls are ordered but independent.
func (s *Service) Negotiate(ctx context.Context, params NegotiateParams) (Result, error) {
	if err := validateNegotiateParams(params); err != nil {
		return Result{}, err
	}

	run := s.newRun(ctx, params.Offer.ID, entity.AttemptKindNegotiate)
	defer run.flush()

	ctx = contextx.WithAttemptID(ctx, contextx.AttemptID(run.attemptID))

	logger(ctx).Info("negotiation started",
		logx.AttemptID(run.attemptID),
		slog.Int64(logx.FieldOfferID, params.Offer.ID),
	)

	// Step 1: deliver the counter offer to the startup's owner account.
	owner, err := s.resolveOwner(ctx, params.Offer.StartupID)
	if err == nil {
		_, err = s.messages.Send(ctx, params.InvestorUserID, owner.ID, negotiationMessage(params))
	}

	if stepErr := run.finishStep(ctx, StepSendMessage, err); stepErr != nil {
		return run.result(), stepErr
	}

	// Step 2: flip the offer to NEGOTIATING.
	offer, err := s.offers.UpdateOfferStatus(ctx, params.Offer.StartupID, params.Offer.ID, value.OfferStatusNegotiating)
	if stepErr := run.finishStep(ctx, StepUpdateOffer, err); stepErr != nil {
		return run.result(), stepErr
	}

	run.offer = offer

	// Step 3: record the negotiation transaction. A repeated negotiation
	// lands a second row against the same offer; the backend has no
	// idempotency key for this route.
	tx, err := s.transactions.Create(ctx, entity.Transaction{
		InvestorID:      params.InvestorID,
		StartupID:       params.Offer.StartupID,
		OfferID:         params.Offer.ID,
		Amount:          params.CounterAmount,
		Status:          value.TransactionStatusNegotiating,
		TransactionType: value.TransactionTypeNegotiation,
		Description:     negotiationMessage(params),
		TransactionDate: s.now(),
	})
	if stepErr := run.finishStep(ctx, StepCreateTx, err); stepErr != nil {
		return run.result(), stepErr
	}

	run.tx = tx

	logger(ctx).Info("negotiation completed",
		logx.AttemptID(run.attemptID),
		slog.Int64(logx.FieldTransactionID, tx.ID),
	)

	return run.result(), nil
}

type AcceptParams struct {
	Offer      entity.Offer
	InvestorID int64
	Payment    payment.Details
}

// Accept gates on payment validation, records an ACCEPT transaction, then
// closes the offer. The offer can only reach CLOSED through this path, so a
// failed payment check leaves everything untouched.
func (s *Service) Accept(ctx context.Context, params AcceptParams) (Result, error) {
	if !params.Offer.Actionable() {
		return Result{}, domain.NewError(errcodes.OfferClosed, "offer is no longer open")
	}

	run := s.newRun(ctx, params.Offer.ID, entity.AttemptKindAccept)
	defer run.flush()

	ctx = contextx.WithAttemptID(ctx, contextx.AttemptID(run.attemptID))

	if stepErr := run.finishStep(ctx, StepValidatePayment, s.payments.Validate(params.Payment)); stepErr != nil {
		return run.result(), stepErr
	}

	tx, err := s.transactions.Create(ctx, entity.Transaction{
		InvestorID:      params.InvestorID,
		StartupID:       params.Offer.StartupID,
		OfferID:         params.Offer.ID,
		Amount:          params.Offer.Amount,
		Status:          value.TransactionStatusAccepted,
		TransactionType: value.TransactionTypeAccept,
		Description:     fmt.Sprintf("Offer accepted via %s payment", params.Payment.Method),
		TransactionDate: s.now(),
	})
	if stepErr := run.finishStep(ctx, StepCreateTx, err); stepErr != nil {
		return run.result(), stepErr
	}

	run.tx = tx

	offer, err := s.offers.UpdateOfferStatus(ctx, params.Offer.StartupID, params.Offer.ID, value.OfferStatusClosed)
	if stepErr := run.finishStep(ctx, StepCloseOffer, err); stepErr != nil {
		return run.result(), stepErr
	}

	run.offer = offer

	logger(ctx).Info("offer accepted",
		logx.AttemptID(run.attemptID),
		slog.Int64(logx.FieldOfferID, offer.ID),
		slog.Int64(logx.FieldTransactionID, tx.ID),
	)

	return run.result(), nil
}

// Reject is client-local: no backend call is made, so the server keeps the
// offer unchanged and other participants never see the rejection. The
// attempt journal is the only durable trace.
func (s *Service) Reject(ctx context.Context, offer entity.Offer) (Result, error) {
	if !offer.Actionable() {
		return Result{}, domain.NewError(errcodes.OfferClosed, "offer is no longer open")
	}

	run := s.newRun(ctx, offer.ID, entity.AttemptKindReject)
	defer run.flush()

	ctx = contextx.WithAttemptID(ctx, contextx.AttemptID(run.attemptID))

	_ = run.finishStep(ctx, StepLocalReject, nil)

	run.tx = entity.Transaction{
		StartupID:       offer.StartupID,
		OfferID:         offer.ID,
		Amount:          offer.Amount,
		Status:          value.TransactionStatusRejected,
		TransactionDate: s.now(),
	}

	logger(ctx).Info("offer rejected locally",
		logx.AttemptID(run.attemptID),
		slog.Int64(logx.FieldOfferID, offer.ID),
	)

	return run.result(), nil
}

func validateNegotiateParams(params NegotiateParams) error {
	if !params.Offer.Actionable() {
		return domain.NewError(errcodes.OfferClosed, "offer is no longer open")
	}

	if params.CounterAmount <= 0 {
		return domain.NewError(errcodes.InvalidAmount, "counter offer amount must be positive")
	}

	if params.CounterEquity <= 0 || params.CounterEquity > 100 {
		return domain.NewError(errcodes.InvalidEquity, "equity must be between 0 and 100 percent")
	}

	return nil
}

func negotiationMessage(params NegotiateParams) string {
	msg := fmt.Sprintf("Counter offer: $%.2f for %.2f%% equity.", params.CounterAmount, params.CounterEquity)
	if params.Message != "" {
		msg += " " + params.Message
	}

	return msg
}

// run tracks one attempt: its id, step outcomes, metrics and the deferred
// journal write.
type run struct {
	svc       *Service
	ctx       context.Context
	attemptID string
	kind      entity.AttemptKind
	offerID   int64
	startedAt time.Time
	steps     []entity.AttemptStep
	offer     entity.Offer
	tx        entity.Transaction
}

func (s *Service) newRun(ctx context.Context, offerID int64, kind entity.AttemptKind) *run {
	return &run{
		svc:       s,
		ctx:       ctx,
		attemptID: xid.New().String(),
		kind:      kind,
		offerID:   offerID,
		startedAt: s.now(),
	}
}

// finishStep records the step outcome and wraps a failure as StepError.
func (r *run) finishStep(ctx context.Context, name string, err error) error {
	step := entity.AttemptStep{
		Name:       name,
		OK:         err == nil,
		FinishedAt: r.svc.now(),
	}

	if err != nil {
		step.Error = err.Error()

		logger(ctx).Error("workflow step failed",
			logx.AttemptID(r.attemptID),
			slog.String(logx.FieldStep, name),
			logx.Error(err),
		)
	}

	r.steps = append(r.steps, step)

	if err == nil {
		return nil
	}

	return &StepError{Step: name, AttemptID: r.attemptID, Err: err}
}

func (r *run) result() Result {
	return Result{
		AttemptID:   r.attemptID,
		Offer:       r.offer,
		Transaction: r.tx,
		Steps:       r.steps,
	}
}

// flush journals the attempt and bumps metrics. Runs deferred so partial
// attempts are captured too.
func (r *run) flush() {
	ok := true
	for _, step := range r.steps {
		ok = ok && step.OK
	}

	attemptsTotal.WithLabelValues(string(r.kind), resultLabel(ok)).Inc()

	if r.svc.journal == nil {
		return
	}

	err := r.svc.journal.Record(context.WithoutCancel(r.ctx), entity.Attempt{
		ID:        r.attemptID,
		OfferID:   r.offerID,
		Kind:      r.kind,
		StartedAt: r.startedAt,
		Steps:     r.steps,
	})
	if err != nil {
		logger(r.ctx).Warn("attempt journal write failed",
			logx.AttemptID(r.attemptID),
			logx.Error(err),
		)
	}
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}

	return "failure"
}
