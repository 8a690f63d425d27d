package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anthonidev/terra-prime-financing/internal/domain/model"
	pkgpostgres "github.com/anthonidev/terra-prime-financing/pkg/postgres"
)

// ErrVersionConflict signals a concurrent modification detected by the
// optimistic version check. The whole batch save is rolled back.
var ErrVersionConflict = errors.New("optimistic locking conflict on installment")

// InstallmentRepo implements port.InstallmentRepository.
type InstallmentRepo struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepo creates a new PostgreSQL-backed installment repository.
func NewInstallmentRepo(pool *pgxpool.Pool) *InstallmentRepo {
	return &InstallmentRepo{pool: pool}
}

const installmentColumns = `
	id, project_id, sale_id, sequence_number,
	lot_amount, urban_development_amount, due_date,
	amount_paid, late_fee_accrued, late_fee_paid,
	is_parked, currency, version, created_at, updated_at
`

// SaveBatch persists all installments inside one transaction. A version
// conflict on any row fails the whole batch, which is what makes a payment
// allocation spanning several installments atomic.
func (r *InstallmentRepo) SaveBatch(ctx context.Context, installments []model.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO installments (` + installmentColumns + `)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO UPDATE SET
				amount_paid      = EXCLUDED.amount_paid,
				late_fee_accrued = EXCLUDED.late_fee_accrued,
				late_fee_paid    = EXCLUDED.late_fee_paid,
				is_parked        = EXCLUDED.is_parked,
				version          = installments.version + 1,
				updated_at       = EXCLUDED.updated_at
			WHERE installments.version = $13
		`
		for _, inst := range installments {
			tag, err := tx.Exec(ctx, query,
				inst.ID(), inst.ProjectID(), inst.SaleID(), inst.Sequence(),
				inst.LotAmount(), inst.UrbanDevAmount(), inst.DueDate(),
				inst.AmountPaid(), inst.LateFeeAccrued(), inst.LateFeePaid(),
				inst.Parked(), inst.Currency().Code(), inst.Version(),
				inst.CreatedAt(), inst.UpdatedAt(),
			)
			if err != nil {
				return fmt.Errorf("save installment %d: %w", inst.Sequence(), err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("installment %s: %w", inst.ID(), ErrVersionConflict)
			}
		}
		return nil
	})
}

// FindByID retrieves one installment.
func (r *InstallmentRepo) FindByID(ctx context.Context, projectID, id string) (model.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE project_id = $1 AND id = $2
	`
	row := r.pool.QueryRow(ctx, query, projectID, id)
	return scanInstallmentRow(row)
}

// FindByIDs retrieves installments preserving the order of the given IDs.
// The caller's order is the allocation order, so it must survive the query.
func (r *InstallmentRepo) FindByIDs(ctx context.Context, projectID string, ids []string) ([]model.Installment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE project_id = $1 AND id = ANY($2)
	`
	rows, err := r.pool.Query(ctx, query, projectID, ids)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]model.Installment, len(ids))
	for rows.Next() {
		inst, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, err
		}
		byID[inst.ID()] = inst
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installments: %w", err)
	}

	ordered := make([]model.Installment, 0, len(ids))
	for _, id := range ids {
		inst, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("installment %s not found in project %s", id, projectID)
		}
		ordered = append(ordered, inst)
	}
	return ordered, nil
}

// FindBySaleID retrieves all installments of a sale in sequence order.
func (r *InstallmentRepo) FindBySaleID(ctx context.Context, projectID, saleID string) ([]model.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE project_id = $1 AND sale_id = $2
		ORDER BY sequence_number
	`
	rows, err := r.pool.Query(ctx, query, projectID, saleID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		inst, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
