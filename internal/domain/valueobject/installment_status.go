package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus is the lifecycle stage of an installment. It is always
// derived from the installment's balances and due date at read time; it is
// never stored, so it cannot drift out of sync with the amounts.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending = "PENDING"
	installmentStatusPaid    = "PAID"
	installmentStatusExpired = "EXPIRED"
)

var (
	InstallmentStatusPending = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusPaid    = InstallmentStatus{value: installmentStatusPaid}
	InstallmentStatusExpired = InstallmentStatus{value: installmentStatusExpired}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending: InstallmentStatusPending,
	installmentStatusPaid:    InstallmentStatusPaid,
	installmentStatusExpired: InstallmentStatusExpired,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }
