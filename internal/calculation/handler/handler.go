package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-pricing-service/internal/calculation"
	"github.com/fekuna/omnipos-pricing-service/internal/calculation/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalculationHandler struct {
	uc     calculation.UseCase
	logger logger.ZapLogger
}

func NewCalculationHandler(uc calculation.UseCase, log logger.ZapLogger) *CalculationHandler {
	return &CalculationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CalculationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCalculations)
	r.Post("/", h.CreateCalculation)
	r.Get("/lookup", h.Lookup)
	r.Post("/calculate", h.Calculate)
	r.Post("/reconcile", h.Reconcile)
	r.Post("/bulk-upload", h.BulkUpload)
	r.Post("/bulk-delete", h.BulkDelete)
	r.Get("/{id}", h.GetCalculation)
	r.Put("/{id}", h.UpdateCalculation)
	r.Delete("/{id}", h.DeleteCalculation)
	return r
}

func (h *CalculationHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	calcs, err := h.uc.ListCalculations(r.Context())
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, calcs)
}

func (h *CalculationHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Lookup(r.Context(), r.URL.Query().Get("product_name"))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input dto.CalculationInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	calc, err := h.uc.Calculate(r.Context(), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, calc)
}

func (h *CalculationHandler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	var input dto.CalculationInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	calc, err := h.uc.CreateCalculation(r.Context(), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, calc)
}

func (h *CalculationHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	calc, err := h.uc.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, calc)
}

func (h *CalculationHandler) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	var input dto.CalculationInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	calc, err := h.uc.UpdateCalculation(r.Context(), chi.URLParam(r, "id"), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, calc)
}

func (h *CalculationHandler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCalculation(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CalculationHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var input dto.BulkDeleteInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	n, err := h.uc.BulkDeleteCalculations(r.Context(), input.IDs)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *CalculationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var rows []sheet.Row
	if err := httpx.Decode(r, &rows); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	res, err := h.uc.Reconcile(r.Context(), rows)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

type bulkUploadResponse struct {
	Message string `json:"message"`
	*model.BulkResult
}

// BulkUpload stores a reconciled sheet. Storage failures are reported with a
// generic message; only the empty-sheet case is specific.
func (h *CalculationHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	var rows []sheet.Row
	if err := httpx.Decode(r, &rows); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	lang := r.Header.Get("Accept-Language")
	res, err := h.uc.BulkUpload(r.Context(), rows)
	if err != nil {
		if errors.Is(err, model.ErrNoValidRows) {
			httpx.Fail(w, r, h.logger, err)
			return
		}
		h.logger.Error("price calculation bulk upload failed", zap.Int("rows", len(rows)), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T("BulkUploadFailed", nil, lang), nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, bulkUploadResponse{
		Message:    i18n.T("BulkUploadSucceeded", map[string]any{"Count": res.Count}, lang),
		BulkResult: res,
	})
}
