package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"genpi/internal/pi/models"
	"genpi/internal/platform/middleware"
	dErrors "genpi/pkg/domain-errors"
	"genpi/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

// Service generates personal-information records.
type Service interface {
	Generate(ctx context.Context, form models.KanaForm) (models.PersonalInfo, error)
}

// Handler serves generated records over HTTP.
type Handler struct {
	logger *slog.Logger
	pi     Service
}

// New creates a new personal-info Handler.
func New(pi Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		pi:     pi,
	}
}

// Register registers the generation route relative to wherever r is mounted.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleGenerate)
}

// handleGenerate returns one record. Query parameters katakana and halfwidth
// take strconv booleans and select the kana form of the readings.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	form, err := kanaFormFromQuery(r)
	if err != nil {
		h.logger.InfoContext(ctx, "rejected generate request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	pi, err := h.pi.Generate(ctx, form)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to generate personal info",
			"request_id", requestID,
			"kana_form", form.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pi)
}

func kanaFormFromQuery(r *http.Request) (models.KanaForm, error) {
	q := r.URL.Query()
	katakana, err := boolParam(q.Get("katakana"), "katakana")
	if err != nil {
		return 0, err
	}
	halfwidth, err := boolParam(q.Get("halfwidth"), "halfwidth")
	if err != nil {
		return 0, err
	}
	form, err := models.KanaFormFromFlags(katakana, halfwidth)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeBadRequest, "halfwidth=true requires katakana=true")
	}
	return form, nil
}

// boolParam treats an absent parameter as false.
func boolParam(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+name+" parameter: "+strconv.Quote(raw))
	}
	return v, nil
}
