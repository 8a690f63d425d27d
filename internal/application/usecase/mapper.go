package usecase

import (
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
)

// toInstallmentResponse maps an aggregate to its external representation,
// deriving balances and status at the given reference time.
func toInstallmentResponse(inst model.Installment, now time.Time) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:             inst.ID(),
		SaleID:         inst.SaleID(),
		Sequence:       inst.Sequence(),
		LotAmount:      inst.LotAmount(),
		UrbanDevAmount: inst.UrbanDevAmount(),
		TotalAmount:    inst.TotalAmount(),
		DueDate:        inst.DueDate(),
		AmountPaid:     inst.AmountPaid(),
		AmountPending:  inst.AmountPending(),
		LateFeeAccrued: inst.LateFeeAccrued(),
		LateFeePaid:    inst.LateFeePaid(),
		LateFeePending: inst.LateFeePending(),
		Parked:         inst.Parked(),
		Status:         inst.StatusAt(now).String(),
		Currency:       inst.Currency().Code(),
		CreatedAt:      inst.CreatedAt(),
		UpdatedAt:      inst.UpdatedAt(),
	}
}

func toInstallmentResponses(installments []model.Installment, now time.Time) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		out = append(out, toInstallmentResponse(inst, now))
	}
	return out
}
