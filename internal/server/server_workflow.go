package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/service/negotiation"
	"startupconnect/internal/domain/service/payment"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/contextx"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/httpx/req"
	"startupconnect/pkg/rest"
)

type workflowService interface {
	Negotiate(ctx context.Context, params negotiation.NegotiateParams) (negotiation.Result, error)
	Accept(ctx context.Context, params negotiation.AcceptParams) (negotiation.Result, error)
	Reject(ctx context.Context, offer entity.Offer) (negotiation.Result, error)
}

type offerFetcher interface {
	Offers(ctx context.Context, startupID int64) ([]entity.Offer, error)
}

type investorProfileFetcher interface {
	Profile(ctx context.Context) (entity.InvestorProfile, error)
}

// WorkflowServer exposes the negotiate / accept / reject actions. Every
// action re-fetches the offer first so decisions run against the freshest
// snapshot available, not whatever the UI last rendered.
type WorkflowServer struct {
	workflow  workflowService
	offers    offerFetcher
	investors investorProfileFetcher
	sessions  sessionReader
}

func NewWorkflowServer(
	workflow workflowService,
	offers offerFetcher,
	investors investorProfileFetcher,
	sessions sessionReader,
) WorkflowServer {
	return WorkflowServer{
		workflow:  workflow,
		offers:    offers,
		investors: investors,
		sessions:  sessions,
	}
}

func (s WorkflowServer) postV1Negotiate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.NegotiateRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	ctx, sess, offer, err := s.actionContext(ctx, r)
	if err != nil {
		return err
	}

	investor, err := s.investors.Profile(ctx)
	if err != nil {
		return fmt.Errorf("investors.Profile: %w", err)
	}

	result, err := s.workflow.Negotiate(ctx, negotiation.NegotiateParams{
		Offer:          offer,
		InvestorID:     investor.ID,
		InvestorUserID: sess.User.ID,
		CounterAmount:  request.CounterAmount,
		CounterEquity:  request.CounterEquity,
		Message:        request.Message,
	})
	if err != nil {
		return fmt.Errorf("workflow.Negotiate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.NegotiateResponse{
		AttemptID:     result.AttemptID,
		OfferStatus:   result.Offer.Status.String(),
		TransactionID: result.Transaction.ID,
	})

	return nil
}

func (s WorkflowServer) postV1Accept(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AcceptRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	details, err := newPaymentDetails(request.Payment)
	if err != nil {
		return err
	}

	ctx, _, offer, err := s.actionContext(ctx, r)
	if err != nil {
		return err
	}

	investor, err := s.investors.Profile(ctx)
	if err != nil {
		return fmt.Errorf("investors.Profile: %w", err)
	}

	result, err := s.workflow.Accept(ctx, negotiation.AcceptParams{
		Offer:      offer,
		InvestorID: investor.ID,
		Payment:    details,
	})
	if err != nil {
		return fmt.Errorf("workflow.Accept: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.AcceptResponse{
		AttemptID:     result.AttemptID,
		OfferStatus:   result.Offer.Status.String(),
		TransactionID: result.Transaction.ID,
	})

	return nil
}

func (s WorkflowServer) postV1Reject(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	ctx, _, offer, err := s.actionContext(ctx, r)
	if err != nil {
		return err
	}

	result, err := s.workflow.Reject(ctx, offer)
	if err != nil {
		return fmt.Errorf("workflow.Reject: %w", err)
	}

	// The rejection is local: the backend still holds the offer in its
	// previous status, which is what the response reports.
	reply.JSON(ctx, w, http.StatusOK, rest.RejectResponse{
		AttemptID:   result.AttemptID,
		OfferStatus: offer.Status.String(),
	})

	return nil
}

// actionContext resolves the session and the target offer for a workflow
// action. Investors only: workflow actions are the investor side of the
// negotiation. The returned context carries the acting user's id so the
// outbound request logs can attribute every backend call.
func (s WorkflowServer) actionContext(
	ctx context.Context,
	r *http.Request,
) (context.Context, entity.Session, entity.Offer, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return ctx, entity.Session{}, entity.Offer{}, domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	if sess.User.Role != value.RoleInvestor {
		return ctx, entity.Session{}, entity.Offer{}, domain.NewError(errcodes.Forbidden, "only investors can act on offers")
	}

	ctx = contextx.WithUserID(ctx, contextx.UserID(sess.User.ID))

	startupID, err := pathID(r, "startupID")
	if err != nil {
		return ctx, entity.Session{}, entity.Offer{}, err
	}

	offerID, err := pathID(r, "offerID")
	if err != nil {
		return ctx, entity.Session{}, entity.Offer{}, err
	}

	offers, err := s.offers.Offers(ctx, startupID)
	if err != nil {
		return ctx, entity.Session{}, entity.Offer{}, fmt.Errorf("offers.Offers: %w", err)
	}

	for _, offer := range offers {
		if offer.ID == offerID {
			return ctx, sess, offer, nil
		}
	}

	return ctx, entity.Session{}, entity.Offer{}, domain.NewError(errcodes.OfferNotFound, "offer not found")
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(errcodes.InvalidOfferID, "invalid "+name)
	}

	return id, nil
}

func newPaymentDetails(p rest.Payment) (payment.Details, error) {
	method, err := value.ParsePaymentMethod(p.Method)
	if err != nil {
		return payment.Details{}, err
	}

	return payment.Details{
		Method:        method,
		CardNumber:    p.CardNumber,
		Expiry:        p.Expiry,
		CVV:           p.CVV,
		UPIID:         p.UPIID,
		Proof:         p.Proof,
		BankName:      p.BankName,
		AccountHolder: p.AccountHolder,
		AccountNumber: p.AccountNumber,
		IFSC:          p.IFSC,
	}, nil
}
