package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Schedule events
// ---------------------------------------------------------------------------

// ScheduleConfirmed is raised when an edited ledger is frozen into
// installments for a sale.
type ScheduleConfirmed struct {
	events.BaseEvent
	InstallmentCount int             `json:"installment_count"`
	LotTotal         decimal.Decimal `json:"lot_total"`
	UrbanDevTotal    decimal.Decimal `json:"urban_development_total"`
	Currency         string          `json:"currency"`
	FirstDueDate     time.Time       `json:"first_due_date"`
}

func NewScheduleConfirmed(
	saleID, projectID string,
	installmentCount int,
	lotTotal, urbanDevTotal decimal.Decimal,
	currency string,
	firstDueDate time.Time,
) ScheduleConfirmed {
	return ScheduleConfirmed{
		BaseEvent:        events.NewBaseEvent("financing.schedule.confirmed", saleID, "Schedule", projectID),
		InstallmentCount: installmentCount,
		LotTotal:         lotTotal,
		UrbanDevTotal:    urbanDevTotal,
		Currency:         currency,
		FirstDueDate:     firstDueDate,
	}
}

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// PaymentAllocationEntry is the audit record of one installment touched by a
// payment.
type PaymentAllocationEntry struct {
	InstallmentID string          `json:"installment_id"`
	Sequence      int             `json:"sequence"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentApplied is raised when a payment has been allocated across one or
// more installments.
type PaymentApplied struct {
	events.BaseEvent
	Amount        decimal.Decimal          `json:"amount"`
	Mode          string                   `json:"mode"`
	Currency      string                   `json:"currency"`
	OperationDate time.Time                `json:"operation_date"`
	Reference     string                   `json:"reference,omitempty"`
	Allocations   []PaymentAllocationEntry `json:"allocations"`
}

func NewPaymentApplied(
	saleID, projectID string,
	amount decimal.Decimal,
	mode, currency string,
	operationDate time.Time,
	reference string,
	allocations []PaymentAllocationEntry,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:     events.NewBaseEvent("financing.payment.applied", saleID, "Installment", projectID),
		Amount:        amount,
		Mode:          mode,
		Currency:      currency,
		OperationDate: operationDate,
		Reference:     reference,
		Allocations:   allocations,
	}
}

// ---------------------------------------------------------------------------
// Late fee events
// ---------------------------------------------------------------------------

// LateFeeAdjusted is raised when an operator manually raises or waives an
// installment's accrued late fee.
type LateFeeAdjusted struct {
	events.BaseEvent
	InstallmentID  string          `json:"installment_id"`
	Action         string          `json:"action"`
	Amount         decimal.Decimal `json:"amount"`
	LateFeePending decimal.Decimal `json:"late_fee_pending"`
}

func NewLateFeeAdjusted(
	saleID, projectID, installmentID string,
	action string,
	amount, lateFeePending decimal.Decimal,
) LateFeeAdjusted {
	return LateFeeAdjusted{
		BaseEvent:      events.NewBaseEvent("financing.late_fee.adjusted", saleID, "Installment", projectID),
		InstallmentID:  installmentID,
		Action:         action,
		Amount:         amount,
		LateFeePending: lateFeePending,
	}
}
