package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
)

// openInstallment rebuilds a persisted installment of S/ 300 lot plus
// S/ 100 urban development due 2025-06-15, nothing paid yet.
func openInstallment(t *testing.T) model.Installment {
	t.Helper()
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return model.ReconstructInstallment(
		"inst-001", "project-001", "sale-001", 1,
		decimal.NewFromInt(300), decimal.NewFromInt(100),
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		decimal.Zero, decimal.Zero, decimal.Zero,
		false, pen(t), 1, created, created,
	)
}

func TestInstallment_DerivedBalances(t *testing.T) {
	inst := openInstallment(t)

	assert.True(t, decimal.NewFromInt(400).Equal(inst.TotalAmount()))
	assert.True(t, decimal.NewFromInt(400).Equal(inst.AmountPending()))
	assert.True(t, inst.LateFeePending().IsZero())
}

func TestInstallment_StatusAt(t *testing.T) {
	beforeDue := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	onDue := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	afterDue := time.Date(2025, 6, 16, 0, 30, 0, 0, time.UTC)

	t.Run("pending before due date", func(t *testing.T) {
		inst := openInstallment(t)
		assert.Equal(t, valueobject.InstallmentStatusPending, inst.StatusAt(beforeDue))
	})

	t.Run("still pending on the due date itself", func(t *testing.T) {
		inst := openInstallment(t)
		assert.Equal(t, valueobject.InstallmentStatusPending, inst.StatusAt(onDue))
	})

	t.Run("expired once the due date passes", func(t *testing.T) {
		inst := openInstallment(t)
		assert.Equal(t, valueobject.InstallmentStatusExpired, inst.StatusAt(afterDue))
	})

	t.Run("paid when both balances reach exactly zero", func(t *testing.T) {
		inst := openInstallment(t)
		inst, err := inst.ApplyPrincipal(decimal.NewFromInt(400), afterDue)
		require.NoError(t, err)
		assert.Equal(t, valueobject.InstallmentStatusPaid, inst.StatusAt(afterDue))
	})

	t.Run("expired is not terminal", func(t *testing.T) {
		inst := openInstallment(t)
		require.Equal(t, valueobject.InstallmentStatusExpired, inst.StatusAt(afterDue))

		inst, err := inst.ApplyPrincipal(decimal.NewFromInt(400), afterDue)
		require.NoError(t, err)
		assert.Equal(t, valueobject.InstallmentStatusPaid, inst.StatusAt(afterDue))
	})

	t.Run("outstanding late fee blocks paid but not expired", func(t *testing.T) {
		inst := openInstallment(t)
		inst, err := inst.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(20), afterDue)
		require.NoError(t, err)
		inst, err = inst.ApplyPrincipal(decimal.NewFromInt(400), afterDue)
		require.NoError(t, err)

		// Principal is settled, so the row is no longer expired, but the
		// late fee keeps it from being paid.
		assert.Equal(t, valueobject.InstallmentStatusPending, inst.StatusAt(afterDue))
	})
}

func TestInstallment_ApplyPrincipal(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial payment accumulates", func(t *testing.T) {
		inst := openInstallment(t)
		inst, err := inst.ApplyPrincipal(decimal.NewFromInt(150), now)
		require.NoError(t, err)
		inst, err = inst.ApplyPrincipal(decimal.NewFromInt(100), now)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(250).Equal(inst.AmountPaid()))
		assert.True(t, decimal.NewFromInt(150).Equal(inst.AmountPending()))
	})

	t.Run("overpayment is rejected and changes nothing", func(t *testing.T) {
		inst := openInstallment(t)
		_, err := inst.ApplyPrincipal(decimal.RequireFromString("400.01"), now)
		assert.ErrorIs(t, err, valueobject.ErrOverpayment)
		assert.True(t, inst.AmountPaid().IsZero())
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		inst := openInstallment(t)
		_, err := inst.ApplyPrincipal(decimal.Zero, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPayment)
	})

	t.Run("mutations keep the loaded version", func(t *testing.T) {
		// The repository uses the loaded version as its optimistic guard
		// and bumps the stored version itself; a mutation that changed it
		// here would make every save conflict with its own load.
		inst := openInstallment(t)
		paid, err := inst.ApplyPrincipal(decimal.NewFromInt(50), now)
		require.NoError(t, err)
		assert.Equal(t, inst.Version(), paid.Version())

		withFee, err := paid.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(5), now)
		require.NoError(t, err)
		assert.Equal(t, inst.Version(), withFee.Version())
	})
}

func TestInstallment_AdjustLateFee(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("add then partially pay then waive the rest", func(t *testing.T) {
		inst := openInstallment(t)

		inst, err := inst.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(20), now)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(20).Equal(inst.LateFeePending()))

		inst, err = inst.ApplyLateFee(decimal.NewFromInt(5), now)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(15).Equal(inst.LateFeePending()))

		// Waiving more than the outstanding fee is rejected even though the
		// accrued total is higher.
		_, err = inst.AdjustLateFee(valueobject.LateFeeActionRemove, decimal.NewFromInt(20), now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidAdjustment)

		inst, err = inst.AdjustLateFee(valueobject.LateFeeActionRemove, decimal.NewFromInt(15), now)
		require.NoError(t, err)
		assert.True(t, inst.LateFeePending().IsZero())
		// Paid history is never rewritten.
		assert.True(t, decimal.NewFromInt(5).Equal(inst.LateFeePaid()))
	})

	t.Run("late fee payment above pending is rejected", func(t *testing.T) {
		inst := openInstallment(t)
		inst, err := inst.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(10), now)
		require.NoError(t, err)

		_, err = inst.ApplyLateFee(decimal.NewFromInt(11), now)
		assert.ErrorIs(t, err, valueobject.ErrOverpayment)
	})

	t.Run("non-positive adjustment is rejected", func(t *testing.T) {
		inst := openInstallment(t)
		_, err := inst.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.Zero, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidAdjustment)
	})
}

func TestInstallment_SetParked(t *testing.T) {
	now := time.Now().UTC()
	inst := openInstallment(t)

	parked := inst.SetParked(true, now)
	assert.True(t, parked.Parked())
	assert.True(t, inst.TotalAmount().Equal(parked.TotalAmount()))
	// The original copy is untouched.
	assert.False(t, inst.Parked())
}
