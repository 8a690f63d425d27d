package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/port"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// ConfirmScheduleUseCase freezes an operator-edited schedule into persisted
// installments. The balance gate runs here: an imbalanced row set never
// reaches storage.
type ConfirmScheduleUseCase struct {
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
}

// NewConfirmScheduleUseCase wires dependencies.
func NewConfirmScheduleUseCase(
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
) *ConfirmScheduleUseCase {
	return &ConfirmScheduleUseCase{
		installmentRepo: installmentRepo,
		publisher:       publisher,
	}
}

// Execute validates and persists the edited schedule for a sale.
func (uc *ConfirmScheduleUseCase) Execute(
	ctx context.Context,
	req dto.ConfirmScheduleRequest,
) (dto.ConfirmScheduleResponse, error) {
	now := time.Now().UTC()

	if req.ProjectID == "" || req.SaleID == "" {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("project ID and sale ID are required")
	}
	if len(req.Rows) == 0 {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("at least one schedule row is required")
	}

	currency, err := money.NewCurrency(req.Currency)
	if err != nil {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("parse currency: %w", err)
	}

	// 1. Rebuild the ledger from the submitted row set.
	rows := make([]model.LedgerRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, model.LedgerRow{
			LotAmount:      r.LotAmount,
			UrbanDevAmount: r.UrbanDevAmount,
			DueDate:        r.DueDate,
			Parked:         r.Parked,
		})
	}
	ledger := model.ReconstructScheduleLedger(rows, req.ExpectedLotTotal, req.ExpectedUrbanDevTotal, currency)

	// 2. Confirm: balance gate plus sequence integrity.
	installments, err := ledger.Confirm(req.ProjectID, req.SaleID, now)
	if err != nil {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("confirm schedule: %w", err)
	}

	// 3. Persist the whole batch atomically.
	if err := uc.installmentRepo.SaveBatch(ctx, installments); err != nil {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("save installments: %w", err)
	}

	// 4. Publish event.
	evt := event.NewScheduleConfirmed(
		req.SaleID, req.ProjectID,
		len(installments),
		req.ExpectedLotTotal, req.ExpectedUrbanDevTotal,
		currency.Code(),
		installments[0].DueDate(),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.ConfirmScheduleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.ConfirmScheduleResponse{
		SaleID:       req.SaleID,
		Installments: toInstallmentResponses(installments, now),
	}, nil
}
