package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-pricing-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
	"github.com/go-chi/chi/v5"
)

type SparePartHandler struct {
	uc     sparepart.UseCase
	logger logger.ZapLogger
}

func NewSparePartHandler(uc sparepart.UseCase, log logger.ZapLogger) *SparePartHandler {
	return &SparePartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SparePartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListSpareParts)
	r.Post("/", h.CreateSparePart)
	r.Post("/bulk-upload", h.BulkUpload)
	r.Post("/bulk-delete", h.BulkDelete)
	r.Get("/{id}", h.GetSparePart)
	r.Put("/{id}", h.UpdateSparePart)
	r.Delete("/{id}", h.DeleteSparePart)
	return r
}

func (h *SparePartHandler) ListSpareParts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	parts, total, err := h.uc.ListSpareParts(r.Context(), &dto.SparePartFilters{
		SearchQuery: q.Get("q"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"spare_parts": parts,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

func (h *SparePartHandler) CreateSparePart(w http.ResponseWriter, r *http.Request) {
	var input dto.SparePartInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	p, err := h.uc.CreateSparePart(r.Context(), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *SparePartHandler) GetSparePart(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetSparePart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *SparePartHandler) UpdateSparePart(w http.ResponseWriter, r *http.Request) {
	var input dto.SparePartInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	p, err := h.uc.UpdateSparePart(r.Context(), chi.URLParam(r, "id"), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *SparePartHandler) DeleteSparePart(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteSparePart(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SparePartHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var input dto.BulkDeleteInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	n, err := h.uc.BulkDeleteSpareParts(r.Context(), input.IDs)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *SparePartHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	var rows []sheet.Row
	if err := httpx.Decode(r, &rows); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	res, err := h.uc.BulkUpload(r.Context(), rows)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}
