// Package service holds domain services that span multiple aggregates.
package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
)

// Payment is one allocator invocation: a positive amount to be split across
// an ordered set of target installments. The mode selects whether the
// principal balance or the late fee balance is reduced. External voucher
// metadata travels opaquely in Reference.
type Payment struct {
	Amount        decimal.Decimal
	Mode          valueobject.PaymentMode
	OperationDate time.Time
	Reference     string
}

// AllocationEntry records how much of a payment landed on one installment,
// for auditability. One entry per touched installment, in allocation order.
type AllocationEntry struct {
	InstallmentID string
	Sequence      int
	Amount        decimal.Decimal
}

// AllocationResult carries the updated installment batch and the per-target
// breakdown. The caller must persist the whole batch in one transaction.
type AllocationResult struct {
	Installments []model.Installment
	Entries      []AllocationEntry
	TotalApplied decimal.Decimal
}

// PaymentAllocator splits a payment across installments following the
// caller-given target order. Single-target payments are the degenerate case
// of the same algorithm.
type PaymentAllocator struct{}

// NewPaymentAllocator creates the allocator.
func NewPaymentAllocator() *PaymentAllocator {
	return &PaymentAllocator{}
}

// Apply allocates payment.Amount across targets in order: each target
// receives min(remaining, pending) against the balance selected by the
// mode, and the remainder moves on. The operation is atomic: on any
// violation no installment is changed. It is deliberately NOT idempotent,
// replaying the same payment applies it again. Exactly-once submission is
// the caller's responsibility.
func (a *PaymentAllocator) Apply(payment Payment, targets []model.Installment) (AllocationResult, error) {
	if !payment.Amount.IsPositive() {
		return AllocationResult{}, fmt.Errorf("%w: payment amount must be positive, got %s",
			valueobject.ErrInvalidPayment, payment.Amount)
	}
	if payment.Mode.IsZero() {
		return AllocationResult{}, fmt.Errorf("%w: payment mode is required", valueobject.ErrInvalidPayment)
	}
	if len(targets) == 0 {
		return AllocationResult{}, fmt.Errorf("%w: no target installments", valueobject.ErrInvalidPayment)
	}

	capacity := decimal.Zero
	for _, t := range targets {
		capacity = capacity.Add(a.pending(payment.Mode, t))
	}
	if payment.Amount.GreaterThan(capacity) {
		return AllocationResult{}, fmt.Errorf("%w: payment %s exceeds total pending %s across %d installments",
			valueobject.ErrOverpayment, payment.Amount, capacity, len(targets))
	}

	now := payment.OperationDate
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// The precondition guarantees the remainder is exhausted before the
	// targets run out, so every cent lands somewhere.
	updated := make([]model.Installment, len(targets))
	copy(updated, targets)
	entries := make([]AllocationEntry, 0, len(targets))
	remaining := payment.Amount

	for idx, target := range updated {
		if remaining.IsZero() {
			break
		}
		portion := decimal.Min(remaining, a.pending(payment.Mode, target))
		if !portion.IsPositive() {
			continue
		}

		var (
			next model.Installment
			err  error
		)
		if payment.Mode.Equal(valueobject.PaymentModeLateFee) {
			next, err = target.ApplyLateFee(portion, now)
		} else {
			next, err = target.ApplyPrincipal(portion, now)
		}
		if err != nil {
			return AllocationResult{}, err
		}

		updated[idx] = next
		entries = append(entries, AllocationEntry{
			InstallmentID: target.ID(),
			Sequence:      target.Sequence(),
			Amount:        portion,
		})
		remaining = remaining.Sub(portion)
	}

	return AllocationResult{
		Installments: updated,
		Entries:      entries,
		TotalApplied: payment.Amount.Sub(remaining),
	}, nil
}

func (a *PaymentAllocator) pending(mode valueobject.PaymentMode, inst model.Installment) decimal.Decimal {
	if mode.Equal(valueobject.PaymentModeLateFee) {
		return inst.LateFeePending()
	}
	return inst.AmountPending()
}
