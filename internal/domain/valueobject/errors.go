package valueobject

import "errors"

// Sentinel errors for the financing engine. Callers match with errors.Is;
// the wrapping site adds the operation context.
var (
	// ErrInvalidPlan rejects calculator input: a non-positive installment
	// count, negative amounts, or a plan with no principal at all.
	ErrInvalidPlan = errors.New("invalid financing plan")

	// ErrImbalancedSchedule blocks confirmation of a ledger whose row
	// amounts do not reconcile with the plan's expected totals.
	ErrImbalancedSchedule = errors.New("schedule amounts do not match expected totals")

	// ErrInvalidPayment rejects a malformed payment request: a non-positive
	// amount, a missing mode, or an empty target set.
	ErrInvalidPayment = errors.New("invalid payment request")

	// ErrOverpayment rejects a payment larger than the aggregate pending
	// balance of its targets. Nothing is applied.
	ErrOverpayment = errors.New("payment exceeds pending balance")

	// ErrInvalidAdjustment rejects a late fee removal larger than the fee
	// currently outstanding.
	ErrInvalidAdjustment = errors.New("adjustment exceeds pending late fee")

	// ErrSequenceIntegrity signals broken contiguous sequence numbering.
	// It indicates a bug in the engine, not bad user input.
	ErrSequenceIntegrity = errors.New("installment sequence numbers are not contiguous")

	// ErrRowNotFound signals a ledger edit aimed at a row ID that is not
	// in the ledger.
	ErrRowNotFound = errors.New("schedule row not found")
)
