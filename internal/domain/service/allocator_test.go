package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/service"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

var operationDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

func installmentWithPending(t *testing.T, id string, sequence int, pending int64) model.Installment {
	t.Helper()
	currency, err := money.NewCurrency("PEN")
	require.NoError(t, err)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.ReconstructInstallment(
		id, "project-001", "sale-001", sequence,
		decimal.NewFromInt(pending), decimal.Zero,
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		decimal.Zero, decimal.Zero, decimal.Zero,
		false, currency, 1, created, created,
	)
}

func TestPaymentAllocator_Apply(t *testing.T) {
	allocator := service.NewPaymentAllocator()

	t.Run("fills targets in caller order", func(t *testing.T) {
		targets := []model.Installment{
			installmentWithPending(t, "inst-001", 1, 50),
			installmentWithPending(t, "inst-002", 2, 30),
		}

		result, err := allocator.Apply(service.Payment{
			Amount:        decimal.NewFromInt(60),
			Mode:          valueobject.PaymentModeInstallment,
			OperationDate: operationDate,
		}, targets)
		require.NoError(t, err)

		require.Len(t, result.Entries, 2)
		assert.Equal(t, "inst-001", result.Entries[0].InstallmentID)
		assert.True(t, decimal.NewFromInt(50).Equal(result.Entries[0].Amount))
		assert.Equal(t, "inst-002", result.Entries[1].InstallmentID)
		assert.True(t, decimal.NewFromInt(10).Equal(result.Entries[1].Amount))

		assert.True(t, result.Installments[0].AmountPending().IsZero())
		assert.True(t, decimal.NewFromInt(20).Equal(result.Installments[1].AmountPending()))
		assert.True(t, decimal.NewFromInt(60).Equal(result.TotalApplied))
	})

	t.Run("caller order wins over sequence order", func(t *testing.T) {
		targets := []model.Installment{
			installmentWithPending(t, "inst-002", 2, 30),
			installmentWithPending(t, "inst-001", 1, 50),
		}

		result, err := allocator.Apply(service.Payment{
			Amount:        decimal.NewFromInt(40),
			Mode:          valueobject.PaymentModeInstallment,
			OperationDate: operationDate,
		}, targets)
		require.NoError(t, err)

		require.Len(t, result.Entries, 2)
		assert.Equal(t, "inst-002", result.Entries[0].InstallmentID)
		assert.True(t, decimal.NewFromInt(30).Equal(result.Entries[0].Amount))
		assert.Equal(t, "inst-001", result.Entries[1].InstallmentID)
		assert.True(t, decimal.NewFromInt(10).Equal(result.Entries[1].Amount))
	})

	t.Run("overpayment across the batch leaves every target untouched", func(t *testing.T) {
		targets := []model.Installment{
			installmentWithPending(t, "inst-001", 1, 50),
			installmentWithPending(t, "inst-002", 2, 30),
		}

		_, err := allocator.Apply(service.Payment{
			Amount:        decimal.RequireFromString("80.01"),
			Mode:          valueobject.PaymentModeInstallment,
			OperationDate: operationDate,
		}, targets)
		assert.ErrorIs(t, err, valueobject.ErrOverpayment)

		assert.True(t, targets[0].AmountPaid().IsZero())
		assert.True(t, targets[1].AmountPaid().IsZero())
	})

	t.Run("exact capacity is accepted", func(t *testing.T) {
		targets := []model.Installment{
			installmentWithPending(t, "inst-001", 1, 50),
			installmentWithPending(t, "inst-002", 2, 30),
		}

		result, err := allocator.Apply(service.Payment{
			Amount:        decimal.NewFromInt(80),
			Mode:          valueobject.PaymentModeInstallment,
			OperationDate: operationDate,
		}, targets)
		require.NoError(t, err)
		assert.True(t, result.Installments[0].AmountPending().IsZero())
		assert.True(t, result.Installments[1].AmountPending().IsZero())
	})

	t.Run("replaying the same payment applies it again", func(t *testing.T) {
		targets := []model.Installment{installmentWithPending(t, "inst-001", 1, 100)}
		payment := service.Payment{
			Amount:        decimal.NewFromInt(20),
			Mode:          valueobject.PaymentModeInstallment,
			OperationDate: operationDate,
		}

		first, err := allocator.Apply(payment, targets)
		require.NoError(t, err)
		second, err := allocator.Apply(payment, first.Installments)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(40).Equal(second.Installments[0].AmountPaid()))
	})

	t.Run("late fee mode reduces only the late fee balance", func(t *testing.T) {
		base := installmentWithPending(t, "inst-001", 1, 100)
		withFee, err := base.AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(15), operationDate)
		require.NoError(t, err)

		result, err := allocator.Apply(service.Payment{
			Amount:        decimal.NewFromInt(15),
			Mode:          valueobject.PaymentModeLateFee,
			OperationDate: operationDate,
		}, []model.Installment{withFee})
		require.NoError(t, err)

		updated := result.Installments[0]
		assert.True(t, updated.LateFeePending().IsZero())
		assert.True(t, decimal.NewFromInt(100).Equal(updated.AmountPending()))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		targets := []model.Installment{installmentWithPending(t, "inst-001", 1, 100)}
		_, err := allocator.Apply(service.Payment{
			Amount: decimal.Zero,
			Mode:   valueobject.PaymentModeInstallment,
		}, targets)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPayment)
	})

	t.Run("rejects empty target set", func(t *testing.T) {
		_, err := allocator.Apply(service.Payment{
			Amount: decimal.NewFromInt(10),
			Mode:   valueobject.PaymentModeInstallment,
		}, nil)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPayment)
	})

	t.Run("rejects missing mode", func(t *testing.T) {
		targets := []model.Installment{installmentWithPending(t, "inst-001", 1, 100)}
		_, err := allocator.Apply(service.Payment{
			Amount: decimal.NewFromInt(10),
		}, targets)
		assert.ErrorIs(t, err, valueobject.ErrInvalidPayment)
	})
}
