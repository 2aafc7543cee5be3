package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"startupconnect/internal/domain/entity"
)

var csvHeader = []string{ //nolint:gochecknoglobals
	"id", "offer_id", "investor_id", "startup_id", "amount", "status", "type", "date",
}

// ExportTransactionsCSV writes the transaction list in the format the admin
// dashboard's download button produces.
func ExportTransactionsCSV(w io.Writer, transactions []entity.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			strconv.FormatInt(tx.OfferID, 10),
			strconv.FormatInt(tx.InvestorID, 10),
			strconv.FormatInt(tx.StartupID, 10),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Status.String(),
			tx.TransactionType.String(),
			formatDate(tx.TransactionDate),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writer.Write: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Error: %w", err)
	}

	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}
