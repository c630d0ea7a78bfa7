// Package loandelivery manages delivery layer of loans.
package loandelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-dmitri/pocket-bank/internal/domain"
	"github.com/go-dmitri/pocket-bank/internal/loanservice"
	"github.com/go-dmitri/pocket-bank/internal/middleware"
	"github.com/go-dmitri/pocket-bank/pkg/errorspkg"
	"github.com/go-dmitri/pocket-bank/pkg/tokenpkg"
	"github.com/go-dmitri/pocket-bank/pkg/web"
)

// Service provides service layer interface needed by loan delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package loandelivery
type Service interface {
	Request(ctx context.Context, userID string, amount, annualRate decimal.Decimal, termMonths int32, purpose, notes string) (domain.Loan, error)
	Get(ctx context.Context, id int64) (domain.Loan, error)
	List(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error)
	SetStatus(ctx context.Context, id int64, status domain.LoanStatus, rejectionReason string) (domain.Loan, error)
}

// Handler facilitates loan delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns loan handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
	}
}

type simulateRequest struct {
	Amount     string `json:"amount" binding:"required"`
	AnnualRate string `json:"annual_rate" binding:"required"`
	TermMonths int32  `json:"term_months" binding:"required,min=1"`
}

type simulateData struct {
	Terms domain.LoanTerms `json:"terms"`
}

type simulateResponse struct {
	Data simulateData `json:"data,omitempty"`
}

// Simulate handles http request to simulate loan terms. The computation is
// the same one that freezes terms onto a created loan request.
func (h *Handler) Simulate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req simulateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, annualRate, err := parseLoanFigures(req.Amount, req.AnnualRate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	terms, err := loanservice.Simulate(amount, annualRate, req.TermMonths)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, simulateResponse{Data: simulateData{terms}})
}

type createRequest struct {
	Amount     string `json:"amount" binding:"required"`
	AnnualRate string `json:"annual_rate" binding:"required"`
	TermMonths int32  `json:"term_months" binding:"required,min=1"`
	Purpose    string `json:"purpose" binding:"required,max=100"`
	Notes      string `json:"notes" binding:"max=500"`
}

type data struct {
	Loan domain.Loan `json:"loan"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to submit a loan request.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, annualRate, err := parseLoanFigures(req.Amount, req.AnnualRate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	loan, err := h.service.Request(ctx, authPayload.Username, amount, annualRate, req.TermMonths, req.Purpose, req.Notes)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrInvalidLoanAmount,
			domain.ErrInvalidLoanRate,
			domain.ErrInvalidLoanTerm:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrOwnerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{loan}})
}

type listRequest struct {
	Status string `form:"status" binding:"omitempty,loanstatus"`
}

type dataLoans struct {
	Loans []domain.Loan `json:"loans"`
}

type responseLoans struct {
	Data dataLoans `json:"data,omitempty"`
}

// List handles http request to list the caller's loans.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	loans, err := h.service.List(ctx, authPayload.Username, domain.LoanStatus(req.Status))
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseLoans{Data: dataLoans{loans}})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get one of the caller's loans.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	loan, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrLoanNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	if loan.UserID != authPayload.Username {
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrLoanNotFound))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{loan}})
}

type setStatusURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type setStatusRequest struct {
	Status          string `json:"status" binding:"required,loanstatus"`
	RejectionReason string `json:"rejection_reason" binding:"max=200"`
}

// SetStatus handles http request to approve or reject a pending loan.
func (h *Handler) SetStatus(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri setStatusURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req setStatusRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	loan, err := h.service.SetStatus(ctx, uri.ID, domain.LoanStatus(req.Status), req.RejectionReason)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrLoanNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		case domain.ErrLoanAlreadyProcessed:
			gctx.JSON(http.StatusConflict, web.Error(err))

			return
		case domain.ErrInvalidLoanStatus:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{loan}})
}

func parseLoanFigures(amount, annualRate string) (decimal.Decimal, decimal.Decimal, error) {
	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, domain.ErrInvalidLoanAmount
	}

	rateDec, err := decimal.NewFromString(annualRate)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, domain.ErrInvalidLoanRate
	}

	return amountDec, rateDec, nil
}
