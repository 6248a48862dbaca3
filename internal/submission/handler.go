package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"quizgym/internal/app/apiresp"
)

type Handler struct {
	svc submissionService
}

type submissionService interface {
	CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*Submission, error)
	ListSubmissions(ctx context.Context) ([]Submission, error)
}

type createSubmissionRequest struct {
	UserName string `json:"user_name"`
	Selected string `json:"selected"`
	QuizID   int64  `json:"quiz_id"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateSubmission(r.Context(), CreateSubmissionInput{
		UserName: req.UserName,
		Selected: req.Selected,
		QuizID:   req.QuizID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrQuizNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "Quiz not found")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}
	apiresp.WriteOK(w, r, http.StatusCreated, item)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListSubmissions(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, items)
}
