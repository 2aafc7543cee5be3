package api

import (
	"context"
	"fmt"

	"startupconnect/internal/domain/entity"
)

// InvestorsClient covers investor profiles plus the admin-only roster
// endpoints. Authorization is the backend's call; the client just forwards
// the token and surfaces 403s as typed errors.
type InvestorsClient struct {
	*Client
}

func NewInvestorsClient(base *Client) *InvestorsClient {
	return &InvestorsClient{Client: base}
}

func (c *InvestorsClient) Get(ctx context.Context, investorID int64) (entity.InvestorProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.InvestorProfile{}, err
	}

	if err := requireID(investorID, "investor"); err != nil {
		return entity.InvestorProfile{}, err
	}

	var dto investorProfileDTO
	if err := c.get(ctx, fmt.Sprintf("/investors/%d", investorID), nil, &dto); err != nil {
		return entity.InvestorProfile{}, err
	}

	return dto.toEntity(), nil
}

// Profile returns the profile of the logged-in investor account.
func (c *InvestorsClient) Profile(ctx context.Context) (entity.InvestorProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.InvestorProfile{}, err
	}

	var dto investorProfileDTO
	if err := c.get(ctx, "/investor/profile", nil, &dto); err != nil {
		return entity.InvestorProfile{}, err
	}

	return dto.toEntity(), nil
}

type InvestorProfileParams struct {
	CompanyName     string  `json:"companyName"`
	Description     string  `json:"description"`
	InvestmentFocus string  `json:"investmentFocus"`
	MinInvestment   float64 `json:"minInvestment"`
	MaxInvestment   float64 `json:"maxInvestment"`
}

func (c *InvestorsClient) UpdateProfile(ctx context.Context, params InvestorProfileParams) (entity.InvestorProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.InvestorProfile{}, err
	}

	var dto investorProfileDTO
	if err := c.put(ctx, "/investor/profile", nil, params, &dto); err != nil {
		return entity.InvestorProfile{}, err
	}

	return dto.toEntity(), nil
}

// AdminList returns every investor profile. Admin token required.
func (c *InvestorsClient) AdminList(ctx context.Context) ([]entity.InvestorProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var dtos []investorProfileDTO
	if err := c.get(ctx, "/admin/investors", nil, &dtos); err != nil {
		return nil, err
	}

	profiles := make([]entity.InvestorProfile, 0, len(dtos))
	for _, dto := range dtos {
		profiles = append(profiles, dto.toEntity())
	}

	return profiles, nil
}
