package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// ---------------------------------------------------------------------------
// Editable schedule ledger
// ---------------------------------------------------------------------------

// LedgerRow is one editable installment of a not-yet-confirmed schedule.
// Unlike a persisted Installment it carries no payment state and may be
// freely edited, inserted, and deleted until the ledger is confirmed.
type LedgerRow struct {
	ID             string
	Sequence       int
	LotAmount      decimal.Decimal
	UrbanDevAmount decimal.Decimal
	DueDate        time.Time
	Parked         bool
}

// TotalAmount returns the combined lot and urban development amount.
func (r LedgerRow) TotalAmount() decimal.Decimal {
	return r.LotAmount.Add(r.UrbanDevAmount)
}

// RowPatch carries the fields of a single-row edit. Nil fields are left
// untouched; no other row is rebalanced.
type RowPatch struct {
	LotAmount      *decimal.Decimal
	UrbanDevAmount *decimal.Decimal
	DueDate        *time.Time
	Parked         *bool
}

// BalanceReport is the result of reconciling ledger rows against the plan's
// expected totals. A component is valid when the absolute difference is
// within money.Tolerance.
type BalanceReport struct {
	LotValid           bool
	UrbanDevValid      bool
	LotDifference      decimal.Decimal
	UrbanDevDifference decimal.Decimal
}

// Valid reports whether both components reconcile.
func (b BalanceReport) Valid() bool { return b.LotValid && b.UrbanDevValid }

// ScheduleLedger is the mutable, in-memory projection of a schedule being
// edited by one operator session. It is the only place where rows can be
// reshaped; once confirmed, the rows freeze into Installment entities and
// leave the ledger's reach.
type ScheduleLedger struct {
	rows             []LedgerRow
	expectedLot      decimal.Decimal
	expectedUrbanDev decimal.Decimal
	currency         money.Currency
}

// NewScheduleLedger opens an editing session over a freshly calculated
// schedule. The schedule's totals become the expected totals every edit is
// reconciled against.
func NewScheduleLedger(schedule Schedule) *ScheduleLedger {
	rows := make([]LedgerRow, 0, len(schedule.Rows))
	for _, r := range schedule.Rows {
		rows = append(rows, LedgerRow{
			ID:             uuid.New().String(),
			Sequence:       r.Sequence,
			LotAmount:      r.LotAmount,
			UrbanDevAmount: r.UrbanDevAmount,
			DueDate:        r.DueDate,
		})
	}
	return &ScheduleLedger{
		rows:             rows,
		expectedLot:      schedule.LotTotal,
		expectedUrbanDev: schedule.UrbanDevTotal,
		currency:         schedule.Currency,
	}
}

// ReconstructScheduleLedger rebuilds a ledger from externally held rows, for
// example the edited row set submitted by an operator at confirmation time.
// Sequence numbers are reassigned from the given row order.
func ReconstructScheduleLedger(
	rows []LedgerRow,
	expectedLot, expectedUrbanDev decimal.Decimal,
	currency money.Currency,
) *ScheduleLedger {
	l := &ScheduleLedger{
		rows:             make([]LedgerRow, len(rows)),
		expectedLot:      expectedLot,
		expectedUrbanDev: expectedUrbanDev,
		currency:         currency,
	}
	copy(l.rows, rows)
	for i := range l.rows {
		if l.rows[i].ID == "" {
			l.rows[i].ID = uuid.New().String()
		}
	}
	l.resequence()
	return l
}

// Rows returns a defensive copy of the current rows in ledger order.
func (l *ScheduleLedger) Rows() []LedgerRow {
	out := make([]LedgerRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// Currency returns the ledger's currency.
func (l *ScheduleLedger) Currency() money.Currency { return l.currency }

// ExpectedLotTotal returns the lot amount the rows must reconcile with.
func (l *ScheduleLedger) ExpectedLotTotal() decimal.Decimal { return l.expectedLot }

// ExpectedUrbanDevTotal returns the urban development amount the rows must
// reconcile with.
func (l *ScheduleLedger) ExpectedUrbanDevTotal() decimal.Decimal { return l.expectedUrbanDev }

// UpdateRow replaces the patched fields of one row. The other rows are not
// rebalanced; the operator reconciles with AdjustLastInstallment or further
// edits before confirming.
func (l *ScheduleLedger) UpdateRow(id string, patch RowPatch) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", valueobject.ErrRowNotFound, id)
	}

	row := &l.rows[idx]
	if patch.LotAmount != nil {
		if patch.LotAmount.IsNegative() {
			return fmt.Errorf("%w: lot amount must not be negative", valueobject.ErrInvalidPlan)
		}
		row.LotAmount = *patch.LotAmount
	}
	if patch.UrbanDevAmount != nil {
		if patch.UrbanDevAmount.IsNegative() {
			return fmt.Errorf("%w: urban development amount must not be negative", valueobject.ErrInvalidPlan)
		}
		row.UrbanDevAmount = *patch.UrbanDevAmount
	}
	if patch.DueDate != nil {
		row.DueDate = *patch.DueDate
	}
	if patch.Parked != nil {
		row.Parked = *patch.Parked
	}
	return nil
}

// BulkUpdateAmounts redistributes lotTotal and urbanDevTotal across exactly
// the selected rows, in ledger order, with the truncation remainder on the
// last selected row. Rows outside the selection are untouched.
func (l *ScheduleLedger) BulkUpdateAmounts(ids []string, lotTotal, urbanDevTotal decimal.Decimal) error {
	selected, err := l.selectInLedgerOrder(ids)
	if err != nil {
		return err
	}
	if lotTotal.IsNegative() || urbanDevTotal.IsNegative() {
		return fmt.Errorf("%w: bulk totals must not be negative", valueobject.ErrInvalidPlan)
	}

	lotParts := money.Split(lotTotal, len(selected))
	urbanDevParts := money.Split(urbanDevTotal, len(selected))
	for i, idx := range selected {
		l.rows[idx].LotAmount = lotParts[i]
		l.rows[idx].UrbanDevAmount = urbanDevParts[i]
	}
	return nil
}

// BulkUpdateDates reassigns consecutive monthly due dates to the selected
// rows starting at startDate. The selection keeps each row's relative order
// in the ledger, regardless of the order the IDs were passed in.
func (l *ScheduleLedger) BulkUpdateDates(ids []string, startDate time.Time) error {
	selected, err := l.selectInLedgerOrder(ids)
	if err != nil {
		return err
	}

	for i, idx := range selected {
		l.rows[idx].DueDate = AddMonths(startDate, i)
	}
	return nil
}

// InsertRows appends qty new rows, distributing lotTotal and urbanDevTotal
// across them and continuing monthly due dates from startDate. Sequence
// numbers are recomputed for the whole ledger.
func (l *ScheduleLedger) InsertRows(qty int, lotTotal, urbanDevTotal decimal.Decimal, startDate time.Time) error {
	if qty < 1 {
		return fmt.Errorf("%w: insert quantity must be at least 1, got %d", valueobject.ErrInvalidPlan, qty)
	}
	if lotTotal.IsNegative() || urbanDevTotal.IsNegative() {
		return fmt.Errorf("%w: insert totals must not be negative", valueobject.ErrInvalidPlan)
	}

	lotParts := money.Split(lotTotal, qty)
	urbanDevParts := money.Split(urbanDevTotal, qty)
	for i := 0; i < qty; i++ {
		l.rows = append(l.rows, LedgerRow{
			ID:             uuid.New().String(),
			LotAmount:      lotParts[i],
			UrbanDevAmount: urbanDevParts[i],
			DueDate:        AddMonths(startDate, i),
		})
	}
	l.resequence()
	return nil
}

// DeleteRows removes the given rows and recomputes sequence numbers.
func (l *ScheduleLedger) DeleteRows(ids []string) error {
	selected, err := l.selectInLedgerOrder(ids)
	if err != nil {
		return err
	}

	drop := make(map[int]bool, len(selected))
	for _, idx := range selected {
		drop[idx] = true
	}
	kept := l.rows[:0]
	for i, row := range l.rows {
		if !drop[i] {
			kept = append(kept, row)
		}
	}
	l.rows = kept
	l.resequence()
	return nil
}

// AdjustLastInstallment adds the difference between the expected totals and
// the current row sums to the last row, one component at a time. This is the
// designated recovery action after manual edits leave the ledger imbalanced.
func (l *ScheduleLedger) AdjustLastInstallment() error {
	if len(l.rows) == 0 {
		return fmt.Errorf("%w: ledger has no rows", valueobject.ErrRowNotFound)
	}

	lotSum, urbanDevSum := l.sums()
	last := &l.rows[len(l.rows)-1]
	last.LotAmount = last.LotAmount.Add(l.expectedLot.Sub(lotSum))
	last.UrbanDevAmount = last.UrbanDevAmount.Add(l.expectedUrbanDev.Sub(urbanDevSum))
	return nil
}

// ValidateBalance reconciles the current rows against the expected totals.
func (l *ScheduleLedger) ValidateBalance() BalanceReport {
	lotSum, urbanDevSum := l.sums()
	lotDiff := l.expectedLot.Sub(lotSum)
	urbanDevDiff := l.expectedUrbanDev.Sub(urbanDevSum)
	return BalanceReport{
		LotValid:           lotDiff.Abs().LessThanOrEqual(money.Tolerance),
		UrbanDevValid:      urbanDevDiff.Abs().LessThanOrEqual(money.Tolerance),
		LotDifference:      lotDiff,
		UrbanDevDifference: urbanDevDiff,
	}
}

// Confirm freezes the ledger into Installment entities keyed by the sale.
// It fails with ErrInvalidPlan when any row carries a negative amount and
// with ErrImbalancedSchedule when either component does not reconcile,
// creating nothing in both cases. A non-contiguous sequence after freezing
// is an engine bug and surfaces as ErrSequenceIntegrity.
func (l *ScheduleLedger) Confirm(projectID, saleID string, now time.Time) ([]Installment, error) {
	// Reconstructed rows bypass the UpdateRow guards, so negative amounts
	// must be caught here before they freeze into installments.
	for i, row := range l.rows {
		if row.LotAmount.IsNegative() || row.UrbanDevAmount.IsNegative() {
			return nil, fmt.Errorf("%w: row %d carries a negative amount",
				valueobject.ErrInvalidPlan, i+1)
		}
	}

	report := l.ValidateBalance()
	if !report.Valid() {
		return nil, fmt.Errorf(
			"%w: lot difference %s, urban development difference %s",
			valueobject.ErrImbalancedSchedule,
			report.LotDifference, report.UrbanDevDifference,
		)
	}

	installments := make([]Installment, 0, len(l.rows))
	for i, row := range l.rows {
		if row.Sequence != i+1 {
			return nil, fmt.Errorf("%w: row %d carries sequence %d",
				valueobject.ErrSequenceIntegrity, i+1, row.Sequence)
		}
		installments = append(installments, newInstallment(
			projectID, saleID, row, l.currency, now,
		))
	}
	return installments, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (l *ScheduleLedger) indexOf(id string) int {
	for i, row := range l.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// selectInLedgerOrder resolves ids to row indexes sorted by ledger position.
func (l *ScheduleLedger) selectInLedgerOrder(ids []string) ([]int, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty selection", valueobject.ErrRowNotFound)
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	selected := make([]int, 0, len(wanted))
	for i, row := range l.rows {
		if wanted[row.ID] {
			selected = append(selected, i)
			delete(wanted, row.ID)
		}
	}
	if len(wanted) > 0 {
		for id := range wanted {
			return nil, fmt.Errorf("%w: %s", valueobject.ErrRowNotFound, id)
		}
	}
	return selected, nil
}

func (l *ScheduleLedger) sums() (lot, urbanDev decimal.Decimal) {
	lot, urbanDev = decimal.Zero, decimal.Zero
	for _, row := range l.rows {
		lot = lot.Add(row.LotAmount)
		urbanDev = urbanDev.Add(row.UrbanDevAmount)
	}
	return lot, urbanDev
}

func (l *ScheduleLedger) resequence() {
	for i := range l.rows {
		l.rows[i].Sequence = i + 1
	}
}
