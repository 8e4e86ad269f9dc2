package httpx

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"go.uber.org/zap"
)

var errorMessages = []struct {
	err       error
	status    int
	messageID string
}{
	{model.ErrProductNotFound, http.StatusNotFound, "ProductNotFound"},
	{model.ErrSparePartNotFound, http.StatusNotFound, "SparePartNotFound"},
	{model.ErrCalculationNotFound, http.StatusNotFound, "CalculationNotFound"},
	{model.ErrValidation, http.StatusUnprocessableEntity, "ValidationFailed"},
	{model.ErrNoValidRows, http.StatusUnprocessableEntity, "NoValidRows"},
	{model.ErrNoValidMasterRows, http.StatusUnprocessableEntity, "NoValidMasterRows"},
}

// Fail writes err as a localized JSON error. Unknown errors are logged and
// reported as a generic internal error.
func Fail(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	lang := r.Header.Get("Accept-Language")
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			var details any
			if errors.Is(err, model.ErrValidation) {
				details = err.Error()
			}
			JSONError(w, m.status, i18n.T(m.messageID, nil, lang), details)
			return
		}
	}

	log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	JSONError(w, http.StatusInternalServerError, i18n.T("InternalError", nil, lang), nil)
}

// BadRequest reports an undecodable request body.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	JSONError(w, http.StatusBadRequest, i18n.T("InvalidRequest", nil, r.Header.Get("Accept-Language")), err.Error())
}
