package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/application/usecase"
	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
)

func adjustRequest(action string, amount int64) dto.AdjustLateFeeRequest {
	return dto.AdjustLateFeeRequest{
		ProjectID:     "project-001",
		SaleID:        "sale-001",
		InstallmentID: "inst-001",
		Action:        action,
		Amount:        decimal.NewFromInt(amount),
	}
}

func TestAdjustLateFee_Execute(t *testing.T) {
	t.Run("adds a late fee and publishes an event", func(t *testing.T) {
		repo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, projectID, id string) (model.Installment, error) {
				return storedInstallment(t, "inst-001", "sale-001", 1, 100), nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewAdjustLateFeeUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), adjustRequest("ADD", 25))
		require.NoError(t, err)

		assert.Equal(t, "inst-001", resp.InstallmentID)
		assert.True(t, decimal.NewFromInt(25).Equal(resp.LateFeeAccrued))
		assert.True(t, decimal.NewFromInt(25).Equal(resp.LateFeePending))

		require.Len(t, repo.savedBatches, 1)
		require.Len(t, repo.savedBatches[0], 1)

		require.Len(t, publisher.publishedEvents, 1)
		adjusted, ok := publisher.publishedEvents[0].(event.LateFeeAdjusted)
		require.True(t, ok)
		assert.Equal(t, "financing.late_fee.adjusted", adjusted.EventType())
		assert.Equal(t, "ADD", adjusted.Action)
	})

	t.Run("waiving beyond the outstanding fee fails and saves nothing", func(t *testing.T) {
		withFee, err := storedInstallment(t, "inst-001", "sale-001", 1, 100).
			AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(20), operationTime())
		require.NoError(t, err)
		withFee, err = withFee.ApplyLateFee(decimal.NewFromInt(5), operationTime())
		require.NoError(t, err)

		repo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, projectID, id string) (model.Installment, error) {
				return withFee, nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewAdjustLateFeeUseCase(repo, publisher)

		// Accrued 20, paid 5: only 15 can still be waived.
		_, err = uc.Execute(context.Background(), adjustRequest("REMOVE", 20))
		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrInvalidAdjustment)
		assert.Empty(t, repo.savedBatches)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("waiving the exact outstanding fee succeeds", func(t *testing.T) {
		withFee, err := storedInstallment(t, "inst-001", "sale-001", 1, 100).
			AdjustLateFee(valueobject.LateFeeActionAdd, decimal.NewFromInt(20), operationTime())
		require.NoError(t, err)
		withFee, err = withFee.ApplyLateFee(decimal.NewFromInt(5), operationTime())
		require.NoError(t, err)

		repo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, projectID, id string) (model.Installment, error) {
				return withFee, nil
			},
		}
		uc := usecase.NewAdjustLateFeeUseCase(repo, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), adjustRequest("REMOVE", 15))
		require.NoError(t, err)
		assert.True(t, resp.LateFeePending.IsZero())
		assert.True(t, decimal.NewFromInt(5).Equal(resp.LateFeeAccrued))
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		uc := usecase.NewAdjustLateFeeUseCase(&mockInstallmentRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), adjustRequest("WAIVE", 10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse action")
	})

	t.Run("rejects installments of another sale", func(t *testing.T) {
		repo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, projectID, id string) (model.Installment, error) {
				return storedInstallment(t, "inst-001", "sale-999", 1, 100), nil
			},
		}
		uc := usecase.NewAdjustLateFeeUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), adjustRequest("ADD", 10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong to sale")
	})

	t.Run("fails when the installment is missing", func(t *testing.T) {
		repo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, projectID, id string) (model.Installment, error) {
				return model.Installment{}, fmt.Errorf("installment %s not found", id)
			},
		}
		uc := usecase.NewAdjustLateFeeUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), adjustRequest("ADD", 10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "find installment")
	})
}
