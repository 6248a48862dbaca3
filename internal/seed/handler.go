package seed

import (
	"context"
	"net/http"

	"quizgym/internal/app/apiresp"
	"quizgym/internal/logging"
)

type seeder interface {
	Seed(ctx context.Context) (*Result, error)
}

type Handler struct {
	svc seeder
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Seed(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("seed sample data", "error", err)
		apiresp.WriteError(w, r, http.StatusInternalServerError, "failed to initialize sample data")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, res)
}
