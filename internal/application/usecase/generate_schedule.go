package usecase

import (
	"context"
	"fmt"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// GenerateScheduleUseCase produces an amortization schedule preview for the
// operator to review and edit. Nothing is persisted.
type GenerateScheduleUseCase struct{}

// NewGenerateScheduleUseCase wires dependencies.
func NewGenerateScheduleUseCase() *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{}
}

// Execute calculates a schedule from the requested financing terms.
func (uc *GenerateScheduleUseCase) Execute(
	_ context.Context,
	req dto.GenerateScheduleRequest,
) (dto.ScheduleResponse, error) {
	currency, err := money.NewCurrency(req.Currency)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("parse currency: %w", err)
	}

	schedule, err := model.CalculateSchedule(model.FinancingPlan{
		PrincipalLot:      req.PrincipalLot,
		PrincipalUrbanDev: req.PrincipalUrbanDev,
		InterestRate:      req.InterestRate,
		InstallmentCount:  req.InstallmentCount,
		FirstPaymentDate:  req.FirstPaymentDate,
		Currency:          currency,
	})
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("calculate schedule: %w", err)
	}

	rows := make([]dto.ScheduleRowResponse, 0, len(schedule.Rows))
	for _, r := range schedule.Rows {
		rows = append(rows, dto.ScheduleRowResponse{
			Sequence:       r.Sequence,
			LotAmount:      r.LotAmount,
			UrbanDevAmount: r.UrbanDevAmount,
			TotalAmount:    r.TotalAmount(),
			DueDate:        r.DueDate,
		})
	}

	return dto.ScheduleResponse{
		Rows:             rows,
		LotTotal:         schedule.LotTotal,
		UrbanDevTotal:    schedule.UrbanDevTotal,
		GrandTotal:       schedule.GrandTotal,
		LotRowCount:      schedule.LotRowCount,
		UrbanDevRowCount: schedule.UrbanDevRowCount,
		Currency:         schedule.Currency.Code(),
	}, nil
}
