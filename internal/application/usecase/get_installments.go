package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/port"
)

// GetInstallmentsUseCase lists a sale's installments with derived status.
type GetInstallmentsUseCase struct {
	installmentRepo port.InstallmentRepository
}

// NewGetInstallmentsUseCase wires dependencies.
func NewGetInstallmentsUseCase(installmentRepo port.InstallmentRepository) *GetInstallmentsUseCase {
	return &GetInstallmentsUseCase{installmentRepo: installmentRepo}
}

// Execute retrieves the installments of a sale in sequence order.
func (uc *GetInstallmentsUseCase) Execute(
	ctx context.Context,
	req dto.GetInstallmentsRequest,
) (dto.GetInstallmentsResponse, error) {
	installments, err := uc.installmentRepo.FindBySaleID(ctx, req.ProjectID, req.SaleID)
	if err != nil {
		return dto.GetInstallmentsResponse{}, fmt.Errorf("find installments: %w", err)
	}

	return dto.GetInstallmentsResponse{
		SaleID:       req.SaleID,
		Installments: toInstallmentResponses(installments, time.Now().UTC()),
	}, nil
}
