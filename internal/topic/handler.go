package topic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"quizgym/internal/app/apiresp"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc topicService
}

type topicService interface {
	CreateTopic(ctx context.Context, in CreateTopicInput) (*Topic, error)
	ListTopics(ctx context.Context) ([]Topic, error)
	GetTopic(ctx context.Context, id int64) (*Topic, error)
}

type createTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateTopic(r.Context(), CreateTopicInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	apiresp.WriteOK(w, r, http.StatusCreated, item)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListTopics(r.Context())
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid topic id")
		return
	}

	item, err := h.svc.GetTopic(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTopicNotFound) {
			apiresp.WriteError(w, r, http.StatusNotFound, "Topic not found")
			return
		}
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, item)
}
