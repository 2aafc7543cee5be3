package api

import (
	"context"
	"fmt"
	"net/url"

	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
)

// StartupsClient covers startup profiles and the offers nested under them.
// Listing endpoints tolerate anonymous access; everything that mutates
// requires a session.
type StartupsClient struct {
	*Client
}

func NewStartupsClient(base *Client) *StartupsClient {
	return &StartupsClient{Client: base}
}

func (c *StartupsClient) List(ctx context.Context) ([]entity.StartupProfile, error) {
	var dtos []startupProfileDTO

	if err := c.get(ctx, "/startups", nil, &dtos); err != nil {
		return nil, err
	}

	profiles := make([]entity.StartupProfile, 0, len(dtos))
	for _, dto := range dtos {
		profiles = append(profiles, dto.toEntity())
	}

	return profiles, nil
}

func (c *StartupsClient) Get(ctx context.Context, startupID int64) (entity.StartupProfile, error) {
	if err := requireID(startupID, "startup"); err != nil {
		return entity.StartupProfile{}, err
	}

	var dto startupProfileDTO
	if err := c.get(ctx, fmt.Sprintf("/startups/%d", startupID), nil, &dto); err != nil {
		return entity.StartupProfile{}, err
	}

	return dto.toEntity(), nil
}

// Profile returns the profile of the logged-in startup account.
func (c *StartupsClient) Profile(ctx context.Context) (entity.StartupProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.StartupProfile{}, err
	}

	var dto startupProfileDTO
	if err := c.get(ctx, "/startups/profile", nil, &dto); err != nil {
		return entity.StartupProfile{}, err
	}

	return dto.toEntity(), nil
}

type StartupProfileParams struct {
	CompanyName  string `json:"companyName"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	FundingStage string `json:"fundingStage"`
	Website      string `json:"website"`
}

func (c *StartupsClient) UpdateProfile(ctx context.Context, params StartupProfileParams) (entity.StartupProfile, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.StartupProfile{}, err
	}

	var dto startupProfileDTO
	if err := c.put(ctx, "/startups/profile", nil, params, &dto); err != nil {
		return entity.StartupProfile{}, err
	}

	return dto.toEntity(), nil
}

// Offers lists the offers published by one startup. Fresh data comes from
// here, not from any local cache: the offer record is server-owned.
func (c *StartupsClient) Offers(ctx context.Context, startupID int64) ([]entity.Offer, error) {
	if err := requireID(startupID, "startup"); err != nil {
		return nil, err
	}

	var dtos offersDTO
	if err := c.get(ctx, fmt.Sprintf("/startups/%d/offers", startupID), nil, &dtos); err != nil {
		return nil, err
	}

	return dtos.toEntities()
}

type OfferParams struct {
	Amount           float64 `json:"amount"`
	EquityPercentage float64 `json:"equityPercentage"`
	Description      string  `json:"description"`
	Terms            string  `json:"terms"`
}

func (c *StartupsClient) CreateOffer(ctx context.Context, startupID int64, params OfferParams) (entity.Offer, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.Offer{}, err
	}

	if err := requireID(startupID, "startup"); err != nil {
		return entity.Offer{}, err
	}

	var dto offerDTO
	if err := c.post(ctx, fmt.Sprintf("/startups/%d/offers", startupID), params, &dto); err != nil {
		return entity.Offer{}, err
	}

	return dto.toEntity()
}

func (c *StartupsClient) UpdateOffer(ctx context.Context, startupID, offerID int64, params OfferParams) (entity.Offer, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.Offer{}, err
	}

	if err := requireID(offerID, "offer"); err != nil {
		return entity.Offer{}, err
	}

	var dto offerDTO
	if err := c.put(ctx, fmt.Sprintf("/startups/%d/offers/%d", startupID, offerID), nil, params, &dto); err != nil {
		return entity.Offer{}, err
	}

	return dto.toEntity()
}

// UpdateOfferStatus sets the offer lifecycle state. The status travels as a
// query parameter with an empty JSON body; that is the contract the backend
// exposes for this route.
func (c *StartupsClient) UpdateOfferStatus(
	ctx context.Context,
	startupID, offerID int64,
	status value.OfferStatus,
) (entity.Offer, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.Offer{}, err
	}

	if err := requireID(offerID, "offer"); err != nil {
		return entity.Offer{}, err
	}

	query := url.Values{"status": []string{status.String()}}

	var dto offerDTO
	endpoint := fmt.Sprintf("/startups/%d/offers/%d/status", startupID, offerID)

	if err := c.put(ctx, endpoint, query, struct{}{}, &dto); err != nil {
		return entity.Offer{}, err
	}

	return dto.toEntity()
}

func (c *StartupsClient) DeleteOffer(ctx context.Context, startupID, offerID int64) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	if err := requireID(offerID, "offer"); err != nil {
		return err
	}

	return c.delete(ctx, fmt.Sprintf("/startups/%d/offers/%d", startupID, offerID))
}
