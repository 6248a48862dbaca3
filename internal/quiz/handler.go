package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"quizgym/internal/app/apiresp"

	"github.com/go-chi/chi/v5"
)

const maxQuizBodyBytes = 1 << 20

type Handler struct {
	svc quizService
}

type quizService interface {
	CreateQuiz(ctx context.Context, in CreateQuizInput) (*Quiz, error)
	GetQuiz(ctx context.Context, id int64) (*Quiz, error)
	ListQuizzesByTopic(ctx context.Context, topicID int64) ([]Quiz, error)
}

type createQuizRequest struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
	TopicID       int64    `json:"topic_id"`
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQuizBodyBytes))
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateCreateQuizBody(body); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req createQuizRequest
	if err := json.Unmarshal(body, &req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.CreateQuiz(r.Context(), CreateQuizInput{
		Question:      req.Question,
		Choices:       req.Choices,
		CorrectAnswer: req.CorrectAnswer,
		TopicID:       req.TopicID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrTopicNotFound):
			apiresp.WriteError(w, r, http.StatusNotFound, "Topic not found")
		default:
			apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	apiresp.WriteOK(w, r, http.StatusCreated, item)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid quiz id")
		return
	}

	item, err := h.svc.GetQuiz(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			apiresp.WriteError(w, r, http.StatusNotFound, "Quiz not found")
			return
		}
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, item)
}

func (h *Handler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.ParseInt(chi.URLParam(r, "topicID"), 10, 64)
	if err != nil || topicID <= 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid topic id")
		return
	}

	items, err := h.svc.ListQuizzesByTopic(r.Context(), topicID)
	if err != nil {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, items)
}
