package rest

// Request and response bodies of the local gateway API.

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=STARTUP INVESTOR"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Offer is an offer prepared for display. CanAccept and CanNegotiate are
// derived for the current viewer; the UI renders buttons from them directly.
type Offer struct {
	ID               int64   `json:"id"`
	StartupID        int64   `json:"startupId"`
	StartupName      string  `json:"startupName,omitempty"`
	Amount           float64 `json:"amount"`
	EquityPercentage float64 `json:"equityPercentage"`
	Description      string  `json:"description"`
	Terms            string  `json:"terms"`
	Status           string  `json:"status"`
	CanAccept        bool    `json:"canAccept"`
	CanNegotiate     bool    `json:"canNegotiate"`
}

type NegotiateRequest struct {
	CounterAmount float64 `json:"counterAmount" validate:"required,gt=0"`
	CounterEquity float64 `json:"counterEquity" validate:"required,gt=0,lte=100"`
	Message       string  `json:"message"`
}

type NegotiateResponse struct {
	AttemptID     string `json:"attemptId"`
	OfferStatus   string `json:"offerStatus"`
	TransactionID int64  `json:"transactionId"`
}

type Payment struct {
	Method string `json:"method" validate:"required,oneof=card upi bank"`

	CardNumber string `json:"cardNumber,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`

	UPIID string `json:"upiId,omitempty"`
	Proof []byte `json:"proof,omitempty"`

	BankName      string `json:"bankName,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

type AcceptRequest struct {
	Payment Payment `json:"payment" validate:"required"`
}

type AcceptResponse struct {
	AttemptID     string `json:"attemptId"`
	OfferStatus   string `json:"offerStatus"`
	TransactionID int64  `json:"transactionId"`
}

type RejectResponse struct {
	AttemptID   string `json:"attemptId"`
	OfferStatus string `json:"offerStatus"`
}

type Transaction struct {
	ID              int64   `json:"id"`
	InvestorID      int64   `json:"investorId"`
	StartupID       int64   `json:"startupId"`
	OfferID         int64   `json:"offerId"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transactionDate"`
}

type Notification struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

type StartupProfile struct {
	ID           int64  `json:"id"`
	CompanyName  string `json:"companyName"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	FundingStage string `json:"fundingStage"`
	Website      string `json:"website"`
}

type InvestorProfile struct {
	ID              int64   `json:"id"`
	CompanyName     string  `json:"companyName"`
	Description     string  `json:"description"`
	InvestmentFocus string  `json:"investmentFocus"`
	MinInvestment   float64 `json:"minInvestment"`
	MaxInvestment   float64 `json:"maxInvestment"`
}

type PitchDeck struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"fileName"`
	Public      bool   `json:"isPublic"`
}

// Dashboards degrade per section: a failed block carries its error message
// next to an empty list instead of failing the whole response.

type InvestorDashboard struct {
	Offers             []Offer        `json:"offers"`
	OffersError        string         `json:"offersError,omitempty"`
	Transactions       []Transaction  `json:"transactions"`
	TransactionsError  string         `json:"transactionsError,omitempty"`
	Notifications      []Notification `json:"notifications"`
	NotificationsError string         `json:"notificationsError,omitempty"`
}

type StartupDashboard struct {
	Profile            *StartupProfile `json:"profile,omitempty"`
	ProfileError       string          `json:"profileError,omitempty"`
	Offers             []Offer         `json:"offers"`
	OffersError        string          `json:"offersError,omitempty"`
	Transactions       []Transaction   `json:"transactions"`
	TransactionsError  string          `json:"transactionsError,omitempty"`
	PitchDecks         []PitchDeck     `json:"pitchDecks"`
	PitchDecksError    string          `json:"pitchDecksError,omitempty"`
	Notifications      []Notification  `json:"notifications"`
	NotificationsError string          `json:"notificationsError,omitempty"`
}

type AdminDashboard struct {
	Investors         []InvestorProfile `json:"investors"`
	InvestorsError    string            `json:"investorsError,omitempty"`
	Startups          []StartupProfile  `json:"startups"`
	StartupsError     string            `json:"startupsError,omitempty"`
	Transactions      []Transaction     `json:"transactions"`
	TransactionsError string            `json:"transactionsError,omitempty"`
}

type OfferPayload struct {
	Amount           float64 `json:"amount"           validate:"required,gt=0"`
	EquityPercentage float64 `json:"equityPercentage" validate:"required,gt=0,lte=100"`
	Description      string  `json:"description"`
	Terms            string  `json:"terms"`
}

type StartupProfilePayload struct {
	CompanyName  string `json:"companyName" validate:"required"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	FundingStage string `json:"fundingStage"`
	Website      string `json:"website"     validate:"omitempty,url"`
}

type InvestorProfilePayload struct {
	CompanyName     string  `json:"companyName" validate:"required"`
	Description     string  `json:"description"`
	InvestmentFocus string  `json:"investmentFocus"`
	MinInvestment   float64 `json:"minInvestment" validate:"gte=0"`
	MaxInvestment   float64 `json:"maxInvestment" validate:"gte=0"`
}

type PitchDeckPayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type MarkReadRequest struct {
	NotificationIDs []int64 `json:"notificationIds" validate:"required,min=1,dive,gt=0"`
}

// WatchConversationRequest names the chat peer either by id or, when only
// the address is known, by email. Exactly one of the two must be set.
type WatchConversationRequest struct {
	PeerUserID int64  `json:"peerUserId,omitempty" validate:"omitempty,gt=0"`
	PeerEmail  string `json:"peerEmail,omitempty"  validate:"omitempty,email"`
}

type Conversations struct {
	Users []User `json:"users"`
}

type WatchResponse struct {
	PollKey string `json:"pollKey"`
}

type PollKeys struct {
	Keys []string `json:"keys"`
}

// Error is the gateway error envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
