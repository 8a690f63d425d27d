package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

// ---------------------------------------------------------------------------
// Financing plan and schedule generation
// ---------------------------------------------------------------------------

// FinancingPlan is the calculator input for one lot sale: the lot principal,
// an optional urban development (HU) principal sharing the same installment
// calendar, and the payment terms chosen by the operator.
type FinancingPlan struct {
	PrincipalLot      decimal.Decimal
	PrincipalUrbanDev decimal.Decimal
	InterestRate      decimal.Decimal // annual percentage; carried as a plan parameter
	InstallmentCount  int
	FirstPaymentDate  time.Time
	Currency          money.Currency
}

// Validate checks the plan against the calculator preconditions.
func (p FinancingPlan) Validate() error {
	if p.InstallmentCount < 1 {
		return fmt.Errorf("%w: installment count must be at least 1, got %d",
			valueobject.ErrInvalidPlan, p.InstallmentCount)
	}
	if p.PrincipalLot.IsNegative() || p.PrincipalUrbanDev.IsNegative() {
		return fmt.Errorf("%w: principals must not be negative", valueobject.ErrInvalidPlan)
	}
	if !p.PrincipalLot.Add(p.PrincipalUrbanDev).IsPositive() {
		return fmt.Errorf("%w: lot and urban development principals are both zero",
			valueobject.ErrInvalidPlan)
	}
	if p.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative", valueobject.ErrInvalidPlan)
	}
	if p.FirstPaymentDate.IsZero() {
		return fmt.Errorf("%w: first payment date is required", valueobject.ErrInvalidPlan)
	}
	if p.Currency.IsZero() {
		return fmt.Errorf("%w: currency is required", valueobject.ErrInvalidPlan)
	}
	return nil
}

// HasUrbanDev reports whether the plan carries an HU financing component.
func (p FinancingPlan) HasUrbanDev() bool {
	return p.PrincipalUrbanDev.IsPositive()
}

// ScheduleRow is one generated installment of a schedule preview.
type ScheduleRow struct {
	Sequence       int
	LotAmount      decimal.Decimal
	UrbanDevAmount decimal.Decimal
	DueDate        time.Time
}

// TotalAmount returns the combined lot and urban development amount.
func (r ScheduleRow) TotalAmount() decimal.Decimal {
	return r.LotAmount.Add(r.UrbanDevAmount)
}

// Schedule is the calculator output: the ordered rows plus aggregate meta.
type Schedule struct {
	Rows             []ScheduleRow
	LotTotal         decimal.Decimal
	UrbanDevTotal    decimal.Decimal
	GrandTotal       decimal.Decimal
	LotRowCount      int
	UrbanDevRowCount int
	Currency         money.Currency
}

// CalculateSchedule splits the plan's lot and urban development principals
// independently across the installment count. Each component uses truncating
// division with the remainder pushed onto the last row, so the rows always
// sum to exactly the input principal. Due dates step monthly from the first
// payment date, clamping to the end of shorter months.
func CalculateSchedule(plan FinancingPlan) (Schedule, error) {
	if err := plan.Validate(); err != nil {
		return Schedule{}, err
	}

	n := plan.InstallmentCount
	lotParts := money.Split(plan.PrincipalLot, n)
	urbanDevParts := money.Split(plan.PrincipalUrbanDev, n)

	rows := make([]ScheduleRow, 0, n)
	lotRows, urbanDevRows := 0, 0
	for i := 0; i < n; i++ {
		row := ScheduleRow{
			Sequence:       i + 1,
			LotAmount:      lotParts[i],
			UrbanDevAmount: urbanDevParts[i],
			DueDate:        AddMonths(plan.FirstPaymentDate, i),
		}
		if row.LotAmount.IsPositive() {
			lotRows++
		}
		if row.UrbanDevAmount.IsPositive() {
			urbanDevRows++
		}
		rows = append(rows, row)
	}

	return Schedule{
		Rows:             rows,
		LotTotal:         plan.PrincipalLot,
		UrbanDevTotal:    plan.PrincipalUrbanDev,
		GrandTotal:       plan.PrincipalLot.Add(plan.PrincipalUrbanDev),
		LotRowCount:      lotRows,
		UrbanDevRowCount: urbanDevRows,
		Currency:         plan.Currency,
	}, nil
}

// AddMonths advances t by the given number of calendar months, clamping the
// day to the last day of the target month. Stepping from January 31st lands
// on February 28th (29th in leap years), not March 2nd.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)

	lastDay := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
