package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/port"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
)

// AdjustLateFeeUseCase applies a manual late fee adjustment to a single
// installment.
type AdjustLateFeeUseCase struct {
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
}

// NewAdjustLateFeeUseCase wires dependencies.
func NewAdjustLateFeeUseCase(
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
) *AdjustLateFeeUseCase {
	return &AdjustLateFeeUseCase{
		installmentRepo: installmentRepo,
		publisher:       publisher,
	}
}

// Execute raises or waives accrued late fee on one installment.
func (uc *AdjustLateFeeUseCase) Execute(
	ctx context.Context,
	req dto.AdjustLateFeeRequest,
) (dto.AdjustLateFeeResponse, error) {
	now := time.Now().UTC()

	action, err := valueobject.NewLateFeeAction(req.Action)
	if err != nil {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf("parse action: %w", err)
	}

	// 1. Retrieve the installment.
	inst, err := uc.installmentRepo.FindByID(ctx, req.ProjectID, req.InstallmentID)
	if err != nil {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf("find installment: %w", err)
	}
	if inst.SaleID() != req.SaleID {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf(
			"installment %s does not belong to sale %s", inst.ID(), req.SaleID)
	}

	// 2. Apply the adjustment.
	inst, err = inst.AdjustLateFee(action, req.Amount, now)
	if err != nil {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf("adjust late fee: %w", err)
	}

	// 3. Persist.
	if err := uc.installmentRepo.SaveBatch(ctx, []model.Installment{inst}); err != nil {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf("save installment: %w", err)
	}

	// 4. Publish event.
	evt := event.NewLateFeeAdjusted(
		inst.SaleID(), req.ProjectID, inst.ID(),
		action.String(), req.Amount, inst.LateFeePending(),
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.AdjustLateFeeResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.AdjustLateFeeResponse{
		InstallmentID:  inst.ID(),
		Action:         action.String(),
		Amount:         req.Amount,
		LateFeeAccrued: inst.LateFeeAccrued(),
		LateFeePending: inst.LateFeePending(),
		Status:         inst.StatusAt(now).String(),
	}, nil
}
