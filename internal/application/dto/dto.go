package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// GenerateScheduleRequest carries the financing terms for a schedule preview.
type GenerateScheduleRequest struct {
	PrincipalLot      decimal.Decimal `json:"principal_lot"`
	PrincipalUrbanDev decimal.Decimal `json:"principal_urban_development"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	InstallmentCount  int             `json:"installment_count"`
	FirstPaymentDate  time.Time       `json:"first_payment_date"`
	Currency          string          `json:"currency"`
}

// ScheduleRowInput is one operator-edited row submitted for confirmation.
type ScheduleRowInput struct {
	LotAmount      decimal.Decimal `json:"lot_amount"`
	UrbanDevAmount decimal.Decimal `json:"urban_development_amount"`
	DueDate        time.Time       `json:"due_date"`
	Parked         bool            `json:"is_parked"`
}

// ConfirmScheduleRequest carries the final edited row set for a sale along
// with the plan totals the rows must reconcile with.
type ConfirmScheduleRequest struct {
	ProjectID             string             `json:"project_id"`
	SaleID                string             `json:"sale_id"`
	ExpectedLotTotal      decimal.Decimal    `json:"expected_lot_total"`
	ExpectedUrbanDevTotal decimal.Decimal    `json:"expected_urban_development_total"`
	Currency              string             `json:"currency"`
	Rows                  []ScheduleRowInput `json:"rows"`
}

// GetInstallmentsRequest identifies a sale whose installments to retrieve.
type GetInstallmentsRequest struct {
	ProjectID string `json:"project_id"`
	SaleID    string `json:"sale_id"`
}

// ApplyPaymentRequest carries one payment and its ordered targets.
type ApplyPaymentRequest struct {
	ProjectID      string          `json:"project_id"`
	SaleID         string          `json:"sale_id"`
	InstallmentIDs []string        `json:"installment_ids"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           string          `json:"mode"`
	OperationDate  time.Time       `json:"operation_date"`
	Reference      string          `json:"reference"`
}

// AdjustLateFeeRequest carries a manual late fee adjustment.
type AdjustLateFeeRequest struct {
	ProjectID     string          `json:"project_id"`
	SaleID        string          `json:"sale_id"`
	InstallmentID string          `json:"installment_id"`
	Action        string          `json:"action"`
	Amount        decimal.Decimal `json:"amount"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleRowResponse is one generated row of a schedule preview.
type ScheduleRowResponse struct {
	Sequence       int             `json:"sequence"`
	LotAmount      decimal.Decimal `json:"lot_amount"`
	UrbanDevAmount decimal.Decimal `json:"urban_development_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DueDate        time.Time       `json:"due_date"`
}

// ScheduleResponse is the external representation of a schedule preview.
type ScheduleResponse struct {
	Rows             []ScheduleRowResponse `json:"rows"`
	LotTotal         decimal.Decimal       `json:"lot_total"`
	UrbanDevTotal    decimal.Decimal       `json:"urban_development_total"`
	GrandTotal       decimal.Decimal       `json:"grand_total"`
	LotRowCount      int                   `json:"lot_row_count"`
	UrbanDevRowCount int                   `json:"urban_development_row_count"`
	Currency         string                `json:"currency"`
}

// InstallmentResponse is the external representation of a confirmed
// installment, including derived balances and status.
type InstallmentResponse struct {
	ID             string          `json:"id"`
	SaleID         string          `json:"sale_id"`
	Sequence       int             `json:"sequence"`
	LotAmount      decimal.Decimal `json:"lot_amount"`
	UrbanDevAmount decimal.Decimal `json:"urban_development_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DueDate        time.Time       `json:"due_date"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AmountPending  decimal.Decimal `json:"amount_pending"`
	LateFeeAccrued decimal.Decimal `json:"late_fee_accrued"`
	LateFeePaid    decimal.Decimal `json:"late_fee_paid"`
	LateFeePending decimal.Decimal `json:"late_fee_pending"`
	Parked         bool            `json:"is_parked"`
	Status         string          `json:"status"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ConfirmScheduleResponse returns the persisted installments of a sale.
type ConfirmScheduleResponse struct {
	SaleID       string                `json:"sale_id"`
	Installments []InstallmentResponse `json:"installments"`
}

// AllocationEntryResponse is the audit record of one touched installment.
type AllocationEntryResponse struct {
	InstallmentID string          `json:"installment_id"`
	Sequence      int             `json:"sequence"`
	Amount        decimal.Decimal `json:"amount"`
}

// ApplyPaymentResponse returns the allocation breakdown and updated rows.
type ApplyPaymentResponse struct {
	SaleID       string                    `json:"sale_id"`
	TotalApplied decimal.Decimal           `json:"total_applied"`
	Mode         string                    `json:"mode"`
	Entries      []AllocationEntryResponse `json:"entries"`
	Installments []InstallmentResponse     `json:"installments"`
}

// AdjustLateFeeResponse returns the adjusted installment's late fee state.
type AdjustLateFeeResponse struct {
	InstallmentID  string          `json:"installment_id"`
	Action         string          `json:"action"`
	Amount         decimal.Decimal `json:"amount"`
	LateFeeAccrued decimal.Decimal `json:"late_fee_accrued"`
	LateFeePending decimal.Decimal `json:"late_fee_pending"`
	Status         string          `json:"status"`
}

// GetInstallmentsResponse lists a sale's installments in sequence order.
type GetInstallmentsResponse struct {
	SaleID       string                `json:"sale_id"`
	Installments []InstallmentResponse `json:"installments"`
}
