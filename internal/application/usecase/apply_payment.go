package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/port"
	"github.com/anthonidev/terra-prime-financing/internal/domain/service"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
)

// ApplyPaymentUseCase allocates a payment across the requested installments
// and persists the updated batch atomically.
type ApplyPaymentUseCase struct {
	installmentRepo port.InstallmentRepository
	publisher       port.EventPublisher
	allocator       *service.PaymentAllocator
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	installmentRepo port.InstallmentRepository,
	publisher port.EventPublisher,
	allocator *service.PaymentAllocator,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		installmentRepo: installmentRepo,
		publisher:       publisher,
		allocator:       allocator,
	}
}

// Execute processes one payment. The targets are loaded in the order the
// request names them, so a payment spanning several installments satisfies
// the earliest-listed rows first.
func (uc *ApplyPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ApplyPaymentRequest,
) (dto.ApplyPaymentResponse, error) {
	now := time.Now().UTC()

	mode, err := valueobject.NewPaymentMode(req.Mode)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("parse payment mode: %w", err)
	}

	// 1. Load the targets in the caller-specified order.
	targets, err := uc.installmentRepo.FindByIDs(ctx, req.ProjectID, req.InstallmentIDs)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("find installments: %w", err)
	}
	for _, t := range targets {
		if t.SaleID() != req.SaleID {
			return dto.ApplyPaymentResponse{}, fmt.Errorf(
				"installment %s does not belong to sale %s", t.ID(), req.SaleID)
		}
	}

	// 2. Allocate. Any violation leaves the batch untouched.
	result, err := uc.allocator.Apply(service.Payment{
		Amount:        req.Amount,
		Mode:          mode,
		OperationDate: req.OperationDate,
		Reference:     req.Reference,
	}, targets)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	// 3. Persist the whole batch in one transaction.
	if err := uc.installmentRepo.SaveBatch(ctx, result.Installments); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("save installments: %w", err)
	}

	// 4. Publish event with the per-installment breakdown.
	allocations := make([]event.PaymentAllocationEntry, 0, len(result.Entries))
	entries := make([]dto.AllocationEntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		allocations = append(allocations, event.PaymentAllocationEntry{
			InstallmentID: e.InstallmentID,
			Sequence:      e.Sequence,
			Amount:        e.Amount,
		})
		entries = append(entries, dto.AllocationEntryResponse{
			InstallmentID: e.InstallmentID,
			Sequence:      e.Sequence,
			Amount:        e.Amount,
		})
	}
	evt := event.NewPaymentApplied(
		req.SaleID, req.ProjectID,
		req.Amount, mode.String(),
		result.Installments[0].Currency().Code(),
		req.OperationDate, req.Reference,
		allocations,
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.ApplyPaymentResponse{
		SaleID:       req.SaleID,
		TotalApplied: result.TotalApplied,
		Mode:         mode.String(),
		Entries:      entries,
		Installments: toInstallmentResponses(result.Installments, now),
	}, nil
}
