package api

import (
	"time"

	"github.com/samber/lo"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/lox"
)

// Wire DTOs mirror the backend JSON verbatim; entities are built from them at
// the boundary so the rest of the client never sees raw payload shapes.

type sessionDTO struct {
	Token string  `json:"token" validate:"required"`
	ID    int64   `json:"id"    validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name"`
	Role  string  `json:"role"  validate:"required"`
	Error *string `json:"error"`
}

func (d sessionDTO) toEntity() (entity.Session, error) {
	role, err := value.ParseRole(d.Role)
	if err != nil {
		return entity.Session{}, err
	}

	return entity.Session{
		User: entity.User{
			ID:    d.ID,
			Email: d.Email,
			Name:  d.Name,
			Role:  role,
		},
		Token: d.Token,
	}, nil
}

type userDTO struct {
	ID    int64  `json:"id"    validate:"required"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (d userDTO) toEntity() entity.User {
	role, err := value.ParseRole(d.Role)
	if err != nil {
		role = ""
	}

	return entity.User{
		ID:    d.ID,
		Email: d.Email,
		Name:  d.Name,
		Role:  role,
	}
}

type offerDTO struct {
	ID               int64   `json:"id" validate:"required"`
	StartupID        int64   `json:"startupId"`
	Amount           float64 `json:"amount"`
	EquityPercentage float64 `json:"equityPercentage"`
	Description      string  `json:"description"`
	Terms            string  `json:"terms"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func (d offerDTO) toEntity() (entity.Offer, error) {
	status, err := value.ParseOfferStatus(d.Status)
	if err != nil {
		return entity.Offer{}, err
	}

	return entity.Offer{
		ID:               d.ID,
		StartupID:        d.StartupID,
		Amount:           d.Amount,
		EquityPercentage: d.EquityPercentage,
		Description:      d.Description,
		Terms:            d.Terms,
		Status:           status,
		CreatedAt:        parseBackendTime(d.CreatedAt),
		UpdatedAt:        parseBackendTime(d.UpdatedAt),
	}, nil
}

type offersDTO []offerDTO

func (d offersDTO) toEntities() ([]entity.Offer, error) {
	return lox.MapErr(d, offerDTO.toEntity)
}

type transactionDTO struct {
	ID              int64   `json:"id" validate:"required"`
	InvestorID      int64   `json:"investorId"`
	StartupID       int64   `json:"startupId"`
	OfferID         int64   `json:"offerId"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transactionDate"`
}

func (d transactionDTO) toEntity() entity.Transaction {
	return entity.Transaction{
		ID:              d.ID,
		InvestorID:      d.InvestorID,
		StartupID:       d.StartupID,
		OfferID:         d.OfferID,
		Amount:          d.Amount,
		Status:          value.TransactionStatus(d.Status),
		TransactionType: value.TransactionType(d.TransactionType),
		Description:     d.Description,
		TransactionDate: parseBackendTime(d.TransactionDate),
	}
}

// transactionRequestDTO is the outbound shape for transaction creation. Dates
// go out in the backend's own format so round-trips compare equal.
type transactionRequestDTO struct {
	InvestorID      int64   `json:"investorId"`
	StartupID       int64   `json:"startupId"`
	OfferID         int64   `json:"offerId"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transactionDate"`
}

func transactionRequestFromEntity(t entity.Transaction) transactionRequestDTO {
	return transactionRequestDTO{
		InvestorID:      t.InvestorID,
		StartupID:       t.StartupID,
		OfferID:         t.OfferID,
		Amount:          t.Amount,
		Status:          t.Status.String(),
		TransactionType: t.TransactionType.String(),
		Description:     t.Description,
		TransactionDate: t.TransactionDate.UTC().Format(backendTimeLayout),
	}
}

type messageDTO struct {
	ID         int64  `json:"id" validate:"required"`
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

func (d messageDTO) toEntity() entity.Message {
	return entity.Message{
		ID:         d.ID,
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		Content:    d.Content,
		Timestamp:  parseBackendTime(d.Timestamp),
	}
}

type notificationDTO struct {
	ID        int64  `json:"id" validate:"required"`
	UserID    int64  `json:"userId"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func (d notificationDTO) toEntity() entity.Notification {
	return entity.Notification{
		ID:        d.ID,
		UserID:    d.UserID,
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: parseBackendTime(d.CreatedAt),
	}
}

type startupProfileDTO struct {
	ID           int64  `json:"id" validate:"required"`
	UserID       int64  `json:"userId"`
	CompanyName  string `json:"companyName"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	FundingStage string `json:"fundingStage"`
	Website      string `json:"website"`
}

func (d startupProfileDTO) toEntity() entity.StartupProfile {
	return entity.StartupProfile{
		ID:           d.ID,
		UserID:       d.UserID,
		CompanyName:  d.CompanyName,
		Description:  d.Description,
		Industry:     d.Industry,
		FundingStage: d.FundingStage,
		Website:      d.Website,
	}
}

type investorProfileDTO struct {
	ID              int64   `json:"id" validate:"required"`
	UserID          int64   `json:"userId"`
	CompanyName     string  `json:"companyName"`
	Description     string  `json:"description"`
	InvestmentFocus string  `json:"investmentFocus"`
	MinInvestment   float64 `json:"minInvestment"`
	MaxInvestment   float64 `json:"maxInvestment"`
}

func (d investorProfileDTO) toEntity() entity.InvestorProfile {
	return entity.InvestorProfile{
		ID:              d.ID,
		UserID:          d.UserID,
		CompanyName:     d.CompanyName,
		Description:     d.Description,
		InvestmentFocus: d.InvestmentFocus,
		MinInvestment:   d.MinInvestment,
		MaxInvestment:   d.MaxInvestment,
	}
}

type pitchDeckDTO struct {
	ID          int64  `json:"id" validate:"required"`
	StartupID   int64  `json:"startupId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"fileName"`
	ContentType string `json:"fileType"`
	Public      bool   `json:"isPublic"`
	UploadedAt  string `json:"uploadedAt"`
}

func (d pitchDeckDTO) toEntity() entity.PitchDeck {
	return entity.PitchDeck{
		ID:          d.ID,
		StartupID:   d.StartupID,
		Title:       d.Title,
		Description: d.Description,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Public:      d.Public,
		UploadedAt:  parseBackendTime(d.UploadedAt),
	}
}

const backendTimeLayout = "2006-01-02T15:04:05"

// parseBackendTime is forgiving: the backend emits local-naive timestamps for
// some resources and full RFC 3339 for others, and a few list endpoints omit
// dates entirely. A zero time is fine for display purposes.
func parseBackendTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, backendTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

func mapTransactions(dtos []transactionDTO) []entity.Transaction {
	return lo.Map(dtos, func(d transactionDTO, _ int) entity.Transaction {
		return d.toEntity()
	})
}

func mapMessages(dtos []messageDTO) []entity.Message {
	return lo.Map(dtos, func(d messageDTO, _ int) entity.Message {
		return d.toEntity()
	})
}

func mapNotifications(dtos []notificationDTO) []entity.Notification {
	return lo.Map(dtos, func(d notificationDTO, _ int) entity.Notification {
		return d.toEntity()
	})
}

func mapPitchDecks(dtos []pitchDeckDTO) []entity.PitchDeck {
	return lo.Map(dtos, func(d pitchDeckDTO, _ int) entity.PitchDeck {
		return d.toEntity()
	})
}

func mapUsers(dtos []userDTO) []entity.User {
	return lo.Map(dtos, func(d userDTO, _ int) entity.User {
		return d.toEntity()
	})
}

// requireID guards path construction: a zero id would hit a different route
// on the backend and return a confusing 404 or the whole collection.
func requireID(id int64, code string) error {
	if id > 0 {
		return nil
	}

	switch code {
	case "offer":
		return domain.NewError(errcodes.InvalidOfferID, "offer id must be positive")
	case "user":
		return domain.NewError(errcodes.InvalidUserID, "user id must be positive")
	default:
		return domain.NewError(errcodes.ValidationError, code+" id must be positive")
	}
}
