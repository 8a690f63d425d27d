package port

import (
	"context"

	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// InstallmentRepository persists and retrieves confirmed installments.
// SaveBatch must write the whole batch in a single transaction so that a
// payment allocation spanning several installments is applied atomically or
// not at all.
//
// An installment's version is the one it was loaded with; domain mutations
// never change it. The store bumps the persisted version on write and
// rejects the batch when any row's stored version no longer matches, so
// callers must reload installments before every save and must not reuse an
// already-saved batch for a second SaveBatch.
type InstallmentRepository interface {
	SaveBatch(ctx context.Context, installments []model.Installment) error
	FindByID(ctx context.Context, projectID, id string) (model.Installment, error)
	FindByIDs(ctx context.Context, projectID string, ids []string) ([]model.Installment, error)
	FindBySaleID(ctx context.Context, projectID, saleID string) ([]model.Installment, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
