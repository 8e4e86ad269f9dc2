package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-pricing-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/product"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListProducts)
	r.Post("/", h.CreateProduct)
	r.Get("/stats", h.Stats)
	r.Post("/bulk-upload", h.BulkUpload)
	r.Post("/bulk-delete", h.BulkDelete)
	r.Get("/{id}", h.GetProduct)
	r.Put("/{id}", h.UpdateProduct)
	r.Patch("/{id}/price", h.UpdatePrice)
	r.Delete("/{id}", h.DeleteProduct)
	return r
}

type listResponse struct {
	Products any `json:"products"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	filters := &dto.ProductFilters{
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	}

	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Products: products, Total: total, Page: page, PageSize: pageSize})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.ProductInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.ProductInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	p, err := h.uc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &input)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdatePriceInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	p, err := h.uc.UpdatePrice(r.Context(), chi.URLParam(r, "id"), input.SalePrice)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var input dto.BulkDeleteInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.BadRequest(w, r, err)
		return
	}

	n, err := h.uc.BulkDeleteProducts(r.Context(), input.IDs)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *ProductHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.Stats(r.Context())
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
