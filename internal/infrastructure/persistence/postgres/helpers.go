package postgres

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scanning code.
type scannable interface {
	Scan(dest ...any) error
}

func scanInstallmentRow(s scannable) (model.Installment, error) {
	var (
		id, projectID, saleID                   string
		sequence                                int
		lotAmount, urbanDevAmount               decimal.Decimal
		dueDate                                 time.Time
		amountPaid, lateFeeAccrued, lateFeePaid decimal.Decimal
		parked                                  bool
		currencyCode                            string
		version                                 int
		createdAt, updatedAt                    time.Time
	)

	err := s.Scan(
		&id, &projectID, &saleID, &sequence,
		&lotAmount, &urbanDevAmount, &dueDate,
		&amountPaid, &lateFeeAccrued, &lateFeePaid,
		&parked, &currencyCode, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Installment{}, fmt.Errorf("scan installment: %w", err)
	}

	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return model.Installment{}, fmt.Errorf("parse currency: %w", err)
	}

	return model.ReconstructInstallment(
		id, projectID, saleID, sequence,
		lotAmount, urbanDevAmount, dueDate,
		amountPaid, lateFeeAccrued, lateFeePaid,
		parked, currency, version, createdAt, updatedAt,
	), nil
}
