package usecase_test

import (
	"context"
	"fmt"

	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
)

// mockInstallmentRepository is a function-field mock of the installment
// repository port. Unset fields fall back to permissive defaults.
type mockInstallmentRepository struct {
	saveBatchFunc    func(ctx context.Context, installments []model.Installment) error
	findByIDFunc     func(ctx context.Context, projectID, id string) (model.Installment, error)
	findByIDsFunc    func(ctx context.Context, projectID string, ids []string) ([]model.Installment, error)
	findBySaleIDFunc func(ctx context.Context, projectID, saleID string) ([]model.Installment, error)

	savedBatches [][]model.Installment
}

func (m *mockInstallmentRepository) SaveBatch(ctx context.Context, installments []model.Installment) error {
	if m.saveBatchFunc != nil {
		if err := m.saveBatchFunc(ctx, installments); err != nil {
			return err
		}
	}
	m.savedBatches = append(m.savedBatches, installments)
	return nil
}

func (m *mockInstallmentRepository) FindByID(ctx context.Context, projectID, id string) (model.Installment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, projectID, id)
	}
	return model.Installment{}, fmt.Errorf("installment %s not found", id)
}

func (m *mockInstallmentRepository) FindByIDs(ctx context.Context, projectID string, ids []string) ([]model.Installment, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, projectID, ids)
	}
	return nil, fmt.Errorf("no installments found")
}

func (m *mockInstallmentRepository) FindBySaleID(ctx context.Context, projectID, saleID string) ([]model.Installment, error) {
	if m.findBySaleIDFunc != nil {
		return m.findBySaleIDFunc(ctx, projectID, saleID)
	}
	return nil, nil
}

// mockEventPublisher captures published domain events.
type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, events...); err != nil {
			return err
		}
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}
