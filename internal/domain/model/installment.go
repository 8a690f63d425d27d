package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// ---------------------------------------------------------------------------
// Installment aggregate (confirmed schedule row)
// ---------------------------------------------------------------------------

// Installment is one confirmed payment obligation of a financed sale.
// It is an immutable aggregate: mutations return a new copy. Once a payment
// has been applied the installment can no longer be deleted; reshaping is
// only possible in the pre-confirmation ledger phase.
type Installment struct {
	id             string
	projectID      string
	saleID         string
	sequence       int
	lotAmount      decimal.Decimal
	urbanDevAmount decimal.Decimal
	dueDate        time.Time
	amountPaid     decimal.Decimal
	lateFeeAccrued decimal.Decimal
	lateFeePaid    decimal.Decimal
	parked         bool
	currency       money.Currency
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// newInstallment freezes a ledger row into a confirmed installment.
func newInstallment(projectID, saleID string, row LedgerRow, currency money.Currency, now time.Time) Installment {
	return Installment{
		id:             uuid.New().String(),
		projectID:      projectID,
		saleID:         saleID,
		sequence:       row.Sequence,
		lotAmount:      row.LotAmount,
		urbanDevAmount: row.UrbanDevAmount,
		dueDate:        row.DueDate,
		amountPaid:     decimal.Zero,
		lateFeeAccrued: decimal.Zero,
		lateFeePaid:    decimal.Zero,
		parked:         row.Parked,
		currency:       currency,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}
}

// ReconstructInstallment rebuilds an Installment aggregate from persistence.
func ReconstructInstallment(
	id, projectID, saleID string,
	sequence int,
	lotAmount, urbanDevAmount decimal.Decimal,
	dueDate time.Time,
	amountPaid, lateFeeAccrued, lateFeePaid decimal.Decimal,
	parked bool,
	currency money.Currency,
	version int,
	createdAt, updatedAt time.Time,
) Installment {
	return Installment{
		id:             id,
		projectID:      projectID,
		saleID:         saleID,
		sequence:       sequence,
		lotAmount:      lotAmount,
		urbanDevAmount: urbanDevAmount,
		dueDate:        dueDate,
		amountPaid:     amountPaid,
		lateFeeAccrued: lateFeeAccrued,
		lateFeePaid:    lateFeePaid,
		parked:         parked,
		currency:       currency,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Derived balances and status
// ---------------------------------------------------------------------------

// TotalAmount returns the installment's combined lot and urban development
// obligation.
func (i Installment) TotalAmount() decimal.Decimal {
	return i.lotAmount.Add(i.urbanDevAmount)
}

// AmountPending returns the unpaid part of the principal obligation.
func (i Installment) AmountPending() decimal.Decimal {
	return i.TotalAmount().Sub(i.amountPaid)
}

// LateFeePending returns the accrued late fee not yet paid.
func (i Installment) LateFeePending() decimal.Decimal {
	return i.lateFeeAccrued.Sub(i.lateFeePaid)
}

// StatusAt derives the installment's status for the given reference date.
// PAID requires both pending balances to be exactly zero; EXPIRED means the
// due date passed with principal still pending. EXPIRED is not terminal: a
// later payment that zeroes the balances turns the row PAID.
func (i Installment) StatusAt(now time.Time) valueobject.InstallmentStatus {
	if i.AmountPending().IsZero() && i.LateFeePending().IsZero() {
		return valueobject.InstallmentStatusPaid
	}
	if i.AmountPending().IsPositive() && i.dueDate.Before(truncateToDay(now)) {
		return valueobject.InstallmentStatusExpired
	}
	return valueobject.InstallmentStatusPending
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ApplyPrincipal records a partial or full payment against the principal
// balance. The amount must be positive and must not exceed AmountPending.
func (i Installment) ApplyPrincipal(amount decimal.Decimal, now time.Time) (Installment, error) {
	if !amount.IsPositive() {
		return i, fmt.Errorf("%w: amount must be positive", valueobject.ErrInvalidPayment)
	}
	if amount.GreaterThan(i.AmountPending()) {
		return i, fmt.Errorf("%w: %s exceeds pending %s on installment %d",
			valueobject.ErrOverpayment, amount, i.AmountPending(), i.sequence)
	}

	next := i
	next.amountPaid = i.amountPaid.Add(amount)
	next.updatedAt = now
	return next, nil
}

// ApplyLateFee records a partial or full payment against the accrued late
// fee. The amount must be positive and must not exceed LateFeePending.
func (i Installment) ApplyLateFee(amount decimal.Decimal, now time.Time) (Installment, error) {
	if !amount.IsPositive() {
		return i, fmt.Errorf("%w: amount must be positive", valueobject.ErrInvalidPayment)
	}
	if amount.GreaterThan(i.LateFeePending()) {
		return i, fmt.Errorf("%w: %s exceeds pending late fee %s on installment %d",
			valueobject.ErrOverpayment, amount, i.LateFeePending(), i.sequence)
	}

	next := i
	next.lateFeePaid = i.lateFeePaid.Add(amount)
	next.updatedAt = now
	return next, nil
}

// AdjustLateFee manually raises or lowers the accrued late fee. ADD is an
// unconditional penalty assessment; REMOVE may not waive more than the fee
// currently outstanding. Paid amounts are never touched.
func (i Installment) AdjustLateFee(action valueobject.LateFeeAction, amount decimal.Decimal, now time.Time) (Installment, error) {
	if !amount.IsPositive() {
		return i, fmt.Errorf("%w: amount must be positive", valueobject.ErrInvalidAdjustment)
	}

	next := i
	switch action {
	case valueobject.LateFeeActionAdd:
		next.lateFeeAccrued = i.lateFeeAccrued.Add(amount)
	case valueobject.LateFeeActionRemove:
		if amount.GreaterThan(i.LateFeePending()) {
			return i, fmt.Errorf("%w: cannot remove %s, pending late fee is %s",
				valueobject.ErrInvalidAdjustment, amount, i.LateFeePending())
		}
		next.lateFeeAccrued = i.lateFeeAccrued.Sub(amount)
	default:
		return i, fmt.Errorf("%w: unknown action %q", valueobject.ErrInvalidAdjustment, action)
	}
	next.updatedAt = now
	return next, nil
}

// SetParked flips the parking-spot classification flag. It has no effect on
// any balance.
func (i Installment) SetParked(parked bool, now time.Time) Installment {
	next := i
	next.parked = parked
	next.updatedAt = now
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (i Installment) ID() string                      { return i.id }
func (i Installment) ProjectID() string               { return i.projectID }
func (i Installment) SaleID() string                  { return i.saleID }
func (i Installment) Sequence() int                   { return i.sequence }
func (i Installment) LotAmount() decimal.Decimal      { return i.lotAmount }
func (i Installment) UrbanDevAmount() decimal.Decimal { return i.urbanDevAmount }
func (i Installment) DueDate() time.Time              { return i.dueDate }
func (i Installment) AmountPaid() decimal.Decimal     { return i.amountPaid }
func (i Installment) LateFeeAccrued() decimal.Decimal { return i.lateFeeAccrued }
func (i Installment) LateFeePaid() decimal.Decimal    { return i.lateFeePaid }
func (i Installment) Parked() bool                    { return i.parked }
func (i Installment) Currency() money.Currency        { return i.currency }
func (i Installment) Version() int                    { return i.version }
func (i Installment) CreatedAt() time.Time            { return i.createdAt }
func (i Installment) UpdatedAt() time.Time            { return i.updatedAt }
