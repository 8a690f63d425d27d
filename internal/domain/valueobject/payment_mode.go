package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaymentMode – immutable value object
// ---------------------------------------------------------------------------

// PaymentMode selects which balance a payment reduces: the installment's
// principal (lot + urban development) or its accrued late fee.
type PaymentMode struct {
	value string
}

const (
	paymentModeInstallment = "INSTALLMENT"
	paymentModeLateFee     = "LATE_FEE"
)

var (
	PaymentModeInstallment = PaymentMode{value: paymentModeInstallment}
	PaymentModeLateFee     = PaymentMode{value: paymentModeLateFee}
)

var validPaymentModes = map[string]PaymentMode{
	paymentModeInstallment: PaymentModeInstallment,
	paymentModeLateFee:     PaymentModeLateFee,
}

// NewPaymentMode creates a PaymentMode from a raw string.
func NewPaymentMode(s string) (PaymentMode, error) {
	v, ok := validPaymentModes[s]
	if !ok {
		return PaymentMode{}, fmt.Errorf("invalid payment mode: %q", s)
	}
	return v, nil
}

// String returns the string representation of the mode.
func (m PaymentMode) String() string { return m.value }

// IsZero returns true if the mode has not been initialised.
func (m PaymentMode) IsZero() bool { return m.value == "" }

// Equal returns true when both modes carry the same value.
func (m PaymentMode) Equal(other PaymentMode) bool { return m.value == other.value }

// ---------------------------------------------------------------------------
// LateFeeAction – immutable value object
// ---------------------------------------------------------------------------

// LateFeeAction is the direction of a manual late fee adjustment.
type LateFeeAction struct {
	value string
}

const (
	lateFeeActionAdd    = "ADD"
	lateFeeActionRemove = "REMOVE"
)

var (
	LateFeeActionAdd    = LateFeeAction{value: lateFeeActionAdd}
	LateFeeActionRemove = LateFeeAction{value: lateFeeActionRemove}
)

var validLateFeeActions = map[string]LateFeeAction{
	lateFeeActionAdd:    LateFeeActionAdd,
	lateFeeActionRemove: LateFeeActionRemove,
}

// NewLateFeeAction creates a LateFeeAction from a raw string.
func NewLateFeeAction(s string) (LateFeeAction, error) {
	v, ok := validLateFeeActions[s]
	if !ok {
		return LateFeeAction{}, fmt.Errorf("invalid late fee action: %q", s)
	}
	return v, nil
}

// String returns the string representation of the action.
func (a LateFeeAction) String() string { return a.value }

// IsZero returns true if the action has not been initialised.
func (a LateFeeAction) IsZero() bool { return a.value == "" }

// Equal returns true when both actions carry the same value.
func (a LateFeeAction) Equal(other LateFeeAction) bool { return a.value == other.value }
