package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-pricing-service/internal/dashboard"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Overview(r.Context())
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Search handles GET /search?q=.
func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
