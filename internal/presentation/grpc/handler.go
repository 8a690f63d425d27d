package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/anthonidev/terra-prime-financing/internal/application/dto"
	"github.com/anthonidev/terra-prime-financing/internal/application/usecase"
	"github.com/anthonidev/terra-prime-financing/internal/domain/valueobject"
	"github.com/anthonidev/terra-prime-financing/pkg/money"
)

const dateLayout = "2006-01-02"

// Compile-time assertion that FinancingHandler implements FinancingServiceServer.
var _ FinancingServiceServer = (*FinancingHandler)(nil)

// FinancingHandler implements the gRPC FinancingServiceServer interface.
type FinancingHandler struct {
	UnimplementedFinancingServiceServer
	generateUC      *usecase.GenerateScheduleUseCase
	confirmUC       *usecase.ConfirmScheduleUseCase
	getUC           *usecase.GetInstallmentsUseCase
	applyPaymentUC  *usecase.ApplyPaymentUseCase
	adjustLateFeeUC *usecase.AdjustLateFeeUseCase
}

// NewFinancingHandler creates a new FinancingHandler.
func NewFinancingHandler(
	generateUC *usecase.GenerateScheduleUseCase,
	confirmUC *usecase.ConfirmScheduleUseCase,
	getUC *usecase.GetInstallmentsUseCase,
	applyPaymentUC *usecase.ApplyPaymentUseCase,
	adjustLateFeeUC *usecase.AdjustLateFeeUseCase,
) *FinancingHandler {
	return &FinancingHandler{
		generateUC:      generateUC,
		confirmUC:       confirmUC,
		getUC:           getUC,
		applyPaymentUC:  applyPaymentUC,
		adjustLateFeeUC: adjustLateFeeUC,
	}
}

// Proto-aligned request/response message types.

// ScheduleRowMsg represents the proto ScheduleRow message.
type ScheduleRowMsg struct {
	Sequence               int    `json:"sequence"`
	LotAmount              string `json:"lot_amount"`
	UrbanDevelopmentAmount string `json:"urban_development_amount"`
	TotalAmount            string `json:"total_amount"`
	DueDate                string `json:"due_date"`
}

// LedgerRowMsg represents the proto LedgerRow message, one operator-edited
// row submitted for confirmation.
type LedgerRowMsg struct {
	LotAmount              string `json:"lot_amount"`
	UrbanDevelopmentAmount string `json:"urban_development_amount"`
	DueDate                string `json:"due_date"`
	IsParked               bool   `json:"is_parked"`
}

// InstallmentMsg represents the proto Installment message.
type InstallmentMsg struct {
	ID                     string `json:"id"`
	SaleID                 string `json:"sale_id"`
	Sequence               int    `json:"sequence"`
	LotAmount              string `json:"lot_amount"`
	UrbanDevelopmentAmount string `json:"urban_development_amount"`
	TotalAmount            string `json:"total_amount"`
	DueDate                string `json:"due_date"`
	AmountPaid             string `json:"amount_paid"`
	AmountPending          string `json:"amount_pending"`
	LateFeeAccrued         string `json:"late_fee_accrued"`
	LateFeePaid            string `json:"late_fee_paid"`
	LateFeePending         string `json:"late_fee_pending"`
	IsParked               bool   `json:"is_parked"`
	Status                 string `json:"status"`
	Currency               string `json:"currency"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

// AllocationEntryMsg represents the proto AllocationEntry message.
type AllocationEntryMsg struct {
	InstallmentID string `json:"installment_id"`
	Sequence      int    `json:"sequence"`
	Amount        string `json:"amount"`
}

// GenerateScheduleRequest represents the proto GenerateScheduleRequest message.
type GenerateScheduleRequest struct {
	LotPrincipal              string `json:"lot_principal"`
	UrbanDevelopmentPrincipal string `json:"urban_development_principal"`
	InterestRate              string `json:"interest_rate"`
	InstallmentCount          int    `json:"installment_count"`
	FirstPaymentDate          string `json:"first_payment_date"`
	Currency                  string `json:"currency"`
}

// GenerateScheduleResponse represents the proto GenerateScheduleResponse message.
type GenerateScheduleResponse struct {
	Rows                     []*ScheduleRowMsg `json:"rows"`
	LotTotal                 string            `json:"lot_total"`
	UrbanDevelopmentTotal    string            `json:"urban_development_total"`
	GrandTotal               string            `json:"grand_total"`
	LotRowCount              int               `json:"lot_row_count"`
	UrbanDevelopmentRowCount int               `json:"urban_development_row_count"`
	Currency                 string            `json:"currency"`
}

// ConfirmScheduleRequest represents the proto ConfirmScheduleRequest message.
type ConfirmScheduleRequest struct {
	ProjectID                     string          `json:"project_id"`
	SaleID                        string          `json:"sale_id"`
	ExpectedLotTotal              string          `json:"expected_lot_total"`
	ExpectedUrbanDevelopmentTotal string          `json:"expected_urban_development_total"`
	Currency                      string          `json:"currency"`
	Rows                          []*LedgerRowMsg `json:"rows"`
}

// ConfirmScheduleResponse represents the proto ConfirmScheduleResponse message.
type ConfirmScheduleResponse struct {
	SaleID       string            `json:"sale_id"`
	Installments []*InstallmentMsg `json:"installments"`
}

// GetInstallmentsRequest represents the proto GetInstallmentsRequest message.
type GetInstallmentsRequest struct {
	ProjectID string `json:"project_id"`
	SaleID    string `json:"sale_id"`
}

// GetInstallmentsResponse represents the proto GetInstallmentsResponse message.
type GetInstallmentsResponse struct {
	SaleID       string            `json:"sale_id"`
	Installments []*InstallmentMsg `json:"installments"`
}

// ApplyPaymentRequest represents the proto ApplyPaymentRequest message.
type ApplyPaymentRequest struct {
	ProjectID      string   `json:"project_id"`
	SaleID         string   `json:"sale_id"`
	InstallmentIDs []string `json:"installment_ids"`
	Amount         string   `json:"amount"`
	Mode           string   `json:"mode"`
	OperationDate  string   `json:"operation_date"`
	Reference      string   `json:"reference"`
}

// ApplyPaymentResponse represents the proto ApplyPaymentResponse message.
type ApplyPaymentResponse struct {
	SaleID       string                `json:"sale_id"`
	TotalApplied string                `json:"total_applied"`
	Mode         string                `json:"mode"`
	Entries      []*AllocationEntryMsg `json:"entries"`
	Installments []*InstallmentMsg     `json:"installments"`
}

// AdjustLateFeeRequest represents the proto AdjustLateFeeRequest message.
type AdjustLateFeeRequest struct {
	ProjectID     string `json:"project_id"`
	SaleID        string `json:"sale_id"`
	InstallmentID string `json:"installment_id"`
	Action        string `json:"action"`
	Amount        string `json:"amount"`
}

// AdjustLateFeeResponse represents the proto AdjustLateFeeResponse message.
type AdjustLateFeeResponse struct {
	InstallmentID  string `json:"installment_id"`
	Action         string `json:"action"`
	Amount         string `json:"amount"`
	LateFeeAccrued string `json:"late_fee_accrued"`
	LateFeePending string `json:"late_fee_pending"`
	Status         string `json:"status"`
}

// GenerateSchedule handles the gRPC request to preview an amortization schedule.
func (h *FinancingHandler) GenerateSchedule(ctx context.Context, req *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	lotPrincipal, err := parseAmount("lot_principal", req.LotPrincipal)
	if err != nil {
		return nil, err
	}
	urbanDevPrincipal, err := parseAmount("urban_development_principal", req.UrbanDevelopmentPrincipal)
	if err != nil {
		return nil, err
	}
	interestRate := decimal.Zero
	if req.InterestRate != "" {
		interestRate, err = parseAmount("interest_rate", req.InterestRate)
		if err != nil {
			return nil, err
		}
	}
	firstPaymentDate, err := parseDate("first_payment_date", req.FirstPaymentDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.generateUC.Execute(ctx, dto.GenerateScheduleRequest{
		PrincipalLot:      lotPrincipal,
		PrincipalUrbanDev: urbanDevPrincipal,
		InterestRate:      interestRate,
		InstallmentCount:  req.InstallmentCount,
		FirstPaymentDate:  firstPaymentDate,
		Currency:          req.Currency,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	rows := make([]*ScheduleRowMsg, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, &ScheduleRowMsg{
			Sequence:               row.Sequence,
			LotAmount:              row.LotAmount.String(),
			UrbanDevelopmentAmount: row.UrbanDevAmount.String(),
			TotalAmount:            row.TotalAmount.String(),
			DueDate:                row.DueDate.Format(dateLayout),
		})
	}

	return &GenerateScheduleResponse{
		Rows:                     rows,
		LotTotal:                 resp.LotTotal.String(),
		UrbanDevelopmentTotal:    resp.UrbanDevTotal.String(),
		GrandTotal:               resp.GrandTotal.String(),
		LotRowCount:              resp.LotRowCount,
		UrbanDevelopmentRowCount: resp.UrbanDevRowCount,
		Currency:                 resp.Currency,
	}, nil
}

// ConfirmSchedule handles the gRPC request to freeze an edited schedule into installments.
func (h *FinancingHandler) ConfirmSchedule(ctx context.Context, req *ConfirmScheduleRequest) (*ConfirmScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ProjectID == "" || req.SaleID == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id and sale_id are required")
	}

	expectedLot, err := parseAmount("expected_lot_total", req.ExpectedLotTotal)
	if err != nil {
		return nil, err
	}
	expectedUrbanDev, err := parseAmount("expected_urban_development_total", req.ExpectedUrbanDevelopmentTotal)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ScheduleRowInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		if row == nil {
			return nil, status.Error(codes.InvalidArgument, "rows must not contain null entries")
		}
		lotAmount, err := parseAmount("lot_amount", row.LotAmount)
		if err != nil {
			return nil, err
		}
		urbanDevAmount, err := parseAmount("urban_development_amount", row.UrbanDevelopmentAmount)
		if err != nil {
			return nil, err
		}
		dueDate, err := parseDate("due_date", row.DueDate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dto.ScheduleRowInput{
			LotAmount:      lotAmount,
			UrbanDevAmount: urbanDevAmount,
			DueDate:        dueDate,
			Parked:         row.IsParked,
		})
	}

	resp, err := h.confirmUC.Execute(ctx, dto.ConfirmScheduleRequest{
		ProjectID:             req.ProjectID,
		SaleID:                req.SaleID,
		ExpectedLotTotal:      expectedLot,
		ExpectedUrbanDevTotal: expectedUrbanDev,
		Currency:              req.Currency,
		Rows:                  rows,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &ConfirmScheduleResponse{
		SaleID:       resp.SaleID,
		Installments: toInstallmentMsgs(resp.Installments),
	}, nil
}

// GetInstallments handles the gRPC request to list a sale's installments.
func (h *FinancingHandler) GetInstallments(ctx context.Context, req *GetInstallmentsRequest) (*GetInstallmentsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ProjectID == "" || req.SaleID == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id and sale_id are required")
	}

	resp, err := h.getUC.Execute(ctx, dto.GetInstallmentsRequest{
		ProjectID: req.ProjectID,
		SaleID:    req.SaleID,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetInstallmentsResponse{
		SaleID:       resp.SaleID,
		Installments: toInstallmentMsgs(resp.Installments),
	}, nil
}

// ApplyPayment handles the gRPC request to allocate a payment across installments.
func (h *FinancingHandler) ApplyPayment(ctx context.Context, req *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ProjectID == "" || req.SaleID == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id and sale_id are required")
	}
	if len(req.InstallmentIDs) == 0 {
		return nil, status.Error(codes.InvalidArgument, "installment_ids is required")
	}

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	operationDate, err := parseDate("operation_date", req.OperationDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.applyPaymentUC.Execute(ctx, dto.ApplyPaymentRequest{
		ProjectID:      req.ProjectID,
		SaleID:         req.SaleID,
		InstallmentIDs: req.InstallmentIDs,
		Amount:         amount,
		Mode:           req.Mode,
		OperationDate:  operationDate,
		Reference:      req.Reference,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	entries := make([]*AllocationEntryMsg, 0, len(resp.Entries))
	for _, entry := range resp.Entries {
		entries = append(entries, &AllocationEntryMsg{
			InstallmentID: entry.InstallmentID,
			Sequence:      entry.Sequence,
			Amount:        entry.Amount.String(),
		})
	}

	return &ApplyPaymentResponse{
		SaleID:       resp.SaleID,
		TotalApplied: resp.TotalApplied.String(),
		Mode:         resp.Mode,
		Entries:      entries,
		Installments: toInstallmentMsgs(resp.Installments),
	}, nil
}

// AdjustLateFee handles the gRPC request to manually raise or waive a late fee.
func (h *FinancingHandler) AdjustLateFee(ctx context.Context, req *AdjustLateFeeRequest) (*AdjustLateFeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ProjectID == "" || req.SaleID == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id and sale_id are required")
	}
	if req.InstallmentID == "" {
		return nil, status.Error(codes.InvalidArgument, "installment_id is required")
	}

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	resp, err := h.adjustLateFeeUC.Execute(ctx, dto.AdjustLateFeeRequest{
		ProjectID:     req.ProjectID,
		SaleID:        req.SaleID,
		InstallmentID: req.InstallmentID,
		Action:        req.Action,
		Amount:        amount,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &AdjustLateFeeResponse{
		InstallmentID:  resp.InstallmentID,
		Action:         resp.Action,
		Amount:         resp.Amount.String(),
		LateFeeAccrued: resp.LateFeeAccrued.String(),
		LateFeePending: resp.LateFeePending.String(),
		Status:         resp.Status,
	}, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	// Storage carries two fractional digits; finer amounts would be
	// silently rounded there and break conservation against the response.
	if !amount.Equal(money.Truncate(amount)) {
		return decimal.Zero, status.Errorf(codes.InvalidArgument,
			"%s must not carry more than %d decimal places, got %s", field, money.Scale, value)
	}
	return amount, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s, expected YYYY-MM-DD: %v", field, err)
	}
	return t, nil
}

func toInstallmentMsgs(installments []dto.InstallmentResponse) []*InstallmentMsg {
	msgs := make([]*InstallmentMsg, 0, len(installments))
	for _, inst := range installments {
		msgs = append(msgs, &InstallmentMsg{
			ID:                     inst.ID,
			SaleID:                 inst.SaleID,
			Sequence:               inst.Sequence,
			LotAmount:              inst.LotAmount.String(),
			UrbanDevelopmentAmount: inst.UrbanDevAmount.String(),
			TotalAmount:            inst.TotalAmount.String(),
			DueDate:                inst.DueDate.Format(dateLayout),
			AmountPaid:             inst.AmountPaid.String(),
			AmountPending:          inst.AmountPending.String(),
			LateFeeAccrued:         inst.LateFeeAccrued.String(),
			LateFeePaid:            inst.LateFeePaid.String(),
			LateFeePending:         inst.LateFeePending.String(),
			IsParked:               inst.Parked,
			Status:                 inst.Status,
			Currency:               inst.Currency,
			CreatedAt:              inst.CreatedAt.Format(time.RFC3339),
			UpdatedAt:              inst.UpdatedAt.Format(time.RFC3339),
		})
	}
	return msgs
}

// statusFromError maps domain errors onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrInvalidPlan),
		errors.Is(err, valueobject.ErrInvalidPayment),
		errors.Is(err, valueobject.ErrInvalidAdjustment):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrImbalancedSchedule),
		errors.Is(err, valueobject.ErrSequenceIntegrity),
		errors.Is(err, valueobject.ErrOverpayment):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrRowNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
