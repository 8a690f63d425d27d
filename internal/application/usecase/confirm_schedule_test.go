package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/application/usecase"
	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
)

func balancedConfirmRequest() dto.ConfirmScheduleRequest {
	firstDue := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	return dto.ConfirmScheduleRequest{
		ProjectID:             "project-001",
		SaleID:                "sale-001",
		ExpectedLotTotal:      decimal.NewFromInt(1000),
		ExpectedUrbanDevTotal: decimal.NewFromInt(300),
		Currency:              "PEN",
		Rows: []dto.ScheduleRowInput{
			{
				LotAmount:      decimal.RequireFromString("333.33"),
				UrbanDevAmount: decimal.NewFromInt(100),
				DueDate:        firstDue,
			},
			{
				LotAmount:      decimal.RequireFromString("333.33"),
				UrbanDevAmount: decimal.NewFromInt(100),
				DueDate:        firstDue.AddDate(0, 1, 0),
			},
			{
				LotAmount:      decimal.RequireFromString("333.34"),
				UrbanDevAmount: decimal.NewFromInt(100),
				DueDate:        firstDue.AddDate(0, 2, 0),
				Parked:         true,
			},
		},
	}
}

func TestConfirmSchedule_Execute(t *testing.T) {
	t.Run("persists the frozen installments and publishes an event", func(t *testing.T) {
		repo := &mockInstallmentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewConfirmScheduleUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), balancedConfirmRequest())
		require.NoError(t, err)

		assert.Equal(t, "sale-001", resp.SaleID)
		require.Len(t, resp.Installments, 3)
		for i, inst := range resp.Installments {
			assert.Equal(t, i+1, inst.Sequence)
			assert.Equal(t, "PENDING", inst.Status)
			assert.True(t, inst.AmountPaid.IsZero())
		}
		assert.True(t, resp.Installments[2].Parked)

		require.Len(t, repo.savedBatches, 1)
		assert.Len(t, repo.savedBatches[0], 3)

		require.Len(t, publisher.publishedEvents, 1)
		confirmed, ok := publisher.publishedEvents[0].(event.ScheduleConfirmed)
		require.True(t, ok)
		assert.Equal(t, "financing.schedule.confirmed", confirmed.EventType())
		assert.Equal(t, "sale-001", confirmed.AggregateID())
		assert.Equal(t, "project-001", confirmed.ProjectID())
		assert.Equal(t, 3, confirmed.InstallmentCount)
	})

	t.Run("imbalanced rows reach neither storage nor the bus", func(t *testing.T) {
		repo := &mockInstallmentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewConfirmScheduleUseCase(repo, publisher)

		req := balancedConfirmRequest()
		req.Rows[0].LotAmount = decimal.NewFromInt(100)

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "confirm schedule")
		assert.Empty(t, repo.savedBatches)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("one cent of drift is tolerated", func(t *testing.T) {
		repo := &mockInstallmentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewConfirmScheduleUseCase(repo, publisher)

		req := balancedConfirmRequest()
		req.Rows[0].LotAmount = decimal.RequireFromString("333.32")

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, repo.savedBatches, 1)
	})

	t.Run("fails when identifiers are missing", func(t *testing.T) {
		uc := usecase.NewConfirmScheduleUseCase(&mockInstallmentRepository{}, &mockEventPublisher{})

		req := balancedConfirmRequest()
		req.SaleID = ""

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("fails when the row set is empty", func(t *testing.T) {
		uc := usecase.NewConfirmScheduleUseCase(&mockInstallmentRepository{}, &mockEventPublisher{})

		req := balancedConfirmRequest()
		req.Rows = nil

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("fails when persistence fails", func(t *testing.T) {
		repo := &mockInstallmentRepository{
			saveBatchFunc: func(ctx context.Context, installments []model.Installment) error {
				return fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewConfirmScheduleUseCase(repo, publisher)

		_, err := uc.Execute(context.Background(), balancedConfirmRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save installments")
		assert.Empty(t, publisher.publishedEvents)
	})
}
