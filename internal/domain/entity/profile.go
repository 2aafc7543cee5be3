package entity

// StartupProfile is the startup-side account profile. UserID is the account
// that owns the profile and is the receiver of negotiation chat messages.
type StartupProfile struct {
	ID           int64
	UserID       int64
	CompanyName  string
	Description  string
	Industry     string
	FundingStage string
	Website      string
}

type InvestorProfile struct {
	ID              int64
	UserID          int64
	CompanyName     string
	Description     string
	InvestmentFocus string
	MinInvestment   float64
	MaxInvestment   float64
}
