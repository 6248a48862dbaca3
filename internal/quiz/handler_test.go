package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type mockQuizService struct {
	createFn      func(ctx context.Context, in CreateQuizInput) (*Quiz, error)
	getFn         func(ctx context.Context, id int64) (*Quiz, error)
	listByTopicFn func(ctx context.Context, topicID int64) ([]Quiz, error)
}

func (m *mockQuizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*Quiz, error) {
	if m.createFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.createFn(ctx, in)
}

func (m *mockQuizService) GetQuiz(ctx context.Context, id int64) (*Quiz, error) {
	if m.getFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.getFn(ctx, id)
}

func (m *mockQuizService) ListQuizzesByTopic(ctx context.Context, topicID int64) ([]Quiz, error) {
	if m.listByTopicFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.listByTopicFn(ctx, topicID)
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateQuizOK(t *testing.T) {
	h := &Handler{svc: &mockQuizService{
		createFn: func(ctx context.Context, in CreateQuizInput) (*Quiz, error) {
			if in.TopicID != 1 || len(in.Choices) != 4 || in.CorrectAnswer != "def" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &Quiz{ID: 10, Question: in.Question, Choices: in.Choices, CorrectAnswer: in.CorrectAnswer, TopicID: in.TopicID}, nil
		},
	}}

	payload := []byte(`{"question":"Which keyword defines a function?","choices":["function","def","func","define"],"correct_answer":"def","topic_id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	body := decodeMap(t, w)
	if body["ok"] != true {
		t.Fatalf("expected ok=true")
	}
}

func TestCreateQuizSchemaRejectsBody(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"question":`},
		{name: "missing choices", payload: `{"question":"Q","correct_answer":"A","topic_id":1}`},
		{name: "one choice", payload: `{"question":"Q","choices":["A"],"correct_answer":"A","topic_id":1}`},
		{name: "five choices", payload: `{"question":"Q","choices":["A","B","C","D","E"],"correct_answer":"A","topic_id":1}`},
		{name: "topic id string", payload: `{"question":"Q","choices":["A","B"],"correct_answer":"A","topic_id":"1"}`},
		{name: "empty question", payload: `{"question":"","choices":["A","B"],"correct_answer":"A","topic_id":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &Handler{svc: &mockQuizService{
				createFn: func(ctx context.Context, in CreateQuizInput) (*Quiz, error) {
					t.Fatalf("service must not be called for invalid body")
					return nil, nil
				},
			}}
			req := httptest.NewRequest(http.MethodPost, "/api/quizzes", strings.NewReader(tc.payload))
			w := httptest.NewRecorder()

			h.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCreateQuizTopicNotFound(t *testing.T) {
	h := &Handler{svc: &mockQuizService{
		createFn: func(ctx context.Context, in CreateQuizInput) (*Quiz, error) {
			return nil, ErrTopicNotFound
		},
	}}

	payload := []byte(`{"question":"Q","choices":["A","B"],"correct_answer":"A","topic_id":99}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.Create(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	h := &Handler{svc: &mockQuizService{
		getFn: func(ctx context.Context, id int64) (*Quiz, error) {
			return nil, ErrQuizNotFound
		},
	}}
	req := withParam(httptest.NewRequest(http.MethodGet, "/api/quizzes/5", nil), "id", "5")
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListByTopicOK(t *testing.T) {
	h := &Handler{svc: &mockQuizService{
		listByTopicFn: func(ctx context.Context, topicID int64) ([]Quiz, error) {
			if topicID != 2 {
				t.Fatalf("unexpected topic id: %d", topicID)
			}
			return []Quiz{{ID: 1, TopicID: 2}}, nil
		},
	}}
	req := withParam(httptest.NewRequest(http.MethodGet, "/api/quizzes/topic/2", nil), "topicID", "2")
	w := httptest.NewRecorder()

	h.ListByTopic(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
