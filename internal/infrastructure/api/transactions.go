package api

import (
	"context"
	"fmt"

	"startupconnect/internal/domain/entity"
)

// TransactionsClient records and lists workflow transactions. Create is
// deliberately non-idempotent: the backend assigns a fresh id per call, and
// repeating a workflow action accumulates rows against the same offer.
type TransactionsClient struct {
	*Client
}

func NewTransactionsClient(base *Client) *TransactionsClient {
	return &TransactionsClient{Client: base}
}

func (c *TransactionsClient) Create(ctx context.Context, tx entity.Transaction) (entity.Transaction, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.Transaction{}, err
	}

	var dto transactionDTO
	if err := c.post(ctx, "/transactions", transactionRequestFromEntity(tx), &dto); err != nil {
		return entity.Transaction{}, err
	}

	return dto.toEntity(), nil
}

// All returns every transaction visible to the current token. For admin
// tokens that is the full ledger.
func (c *TransactionsClient) All(ctx context.Context) ([]entity.Transaction, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var dtos []transactionDTO
	if err := c.get(ctx, "/transactions", nil, &dtos); err != nil {
		return nil, err
	}

	return mapTransactions(dtos), nil
}

func (c *TransactionsClient) ByInvestor(ctx context.Context, investorID int64) ([]entity.Transaction, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	if err := requireID(investorID, "investor"); err != nil {
		return nil, err
	}

	var dtos []transactionDTO
	if err := c.get(ctx, fmt.Sprintf("/transactions/investor/%d", investorID), nil, &dtos); err != nil {
		return nil, err
	}

	return mapTransactions(dtos), nil
}

func (c *TransactionsClient) ByStartup(ctx context.Context, startupID int64) ([]entity.Transaction, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	if err := requireID(startupID, "startup"); err != nil {
		return nil, err
	}

	var dtos []transactionDTO
	if err := c.get(ctx, fmt.Sprintf("/transactions/startup/%d", startupID), nil, &dtos); err != nil {
		return nil, err
	}

	return mapTransactions(dtos), nil
}
