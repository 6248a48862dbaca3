package app

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFrontendSmokePublicRoutes(t *testing.T) {
	restore := chdirToRepoRoot(t)
	defer restore()

	router := NewRouter(Config{
		CSRFEnforced:          false,
		UploadRateLimitPerMin: 60,
		CORSAllowedOrigins:    []string{"*"},
		StaticDir:             "web/static",
	}, nil, nil)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "home", method: http.MethodGet, target: "/", wantStatus: http.StatusOK},
		{name: "healthz", method: http.MethodGet, target: "/healthz", wantStatus: http.StatusOK},
		{name: "healthz_trailing_slash", method: http.MethodGet, target: "/healthz/", wantStatus: http.StatusOK},
		{name: "readyz_without_db", method: http.MethodGet, target: "/readyz", wantStatus: http.StatusServiceUnavailable},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "static_js", method: http.MethodGet, target: "/static/app.js?v=test", wantStatus: http.StatusOK},
		{name: "static_css", method: http.MethodGet, target: "/static/app.css", wantStatus: http.StatusOK},
		{name: "template", method: http.MethodGet, target: "/api/download-template/", wantStatus: http.StatusOK},
		{name: "topic_invalid_id", method: http.MethodGet, target: "/api/topics/abc", wantStatus: http.StatusBadRequest},
		{name: "quiz_invalid_body", method: http.MethodPost, target: "/api/quizzes", body: `{"question":""}`, wantStatus: http.StatusBadRequest},
		{name: "upload_not_multipart", method: http.MethodPost, target: "/api/upload-quizzes/", body: "{}", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("%s %s: got status %d, want %d", tc.method, tc.target, w.Code, tc.wantStatus)
			}
		})
	}
}

func TestUploadRejectsNonSpreadsheet(t *testing.T) {
	restore := chdirToRepoRoot(t)
	defer restore()

	router := NewRouter(Config{UploadRateLimitPerMin: 60, CORSAllowedOrigins: []string{"*"}}, nil, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "quizzes.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("Question,Choice 1\n"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-quizzes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "File must be an Excel file (.xlsx or .xls)") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestUploadRateLimited(t *testing.T) {
	restore := chdirToRepoRoot(t)
	defer restore()

	router := NewRouter(Config{UploadRateLimitPerMin: 1, CORSAllowedOrigins: []string{"*"}}, nil, nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/upload-quizzes", strings.NewReader("{}"))
		req.RemoteAddr = "192.0.2.10:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func chdirToRepoRoot(t *testing.T) func() {
	t.Helper()

	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	dir := start
	for {
		if fileExists(filepath.Join(dir, "go.mod")) && fileExists(filepath.Join(dir, "web", "static", "index.html")) {
			if err := os.Chdir(dir); err != nil {
				t.Fatalf("chdir to repo root %s: %v", dir, err)
			}
			return func() {
				_ = os.Chdir(start)
			}
		}

		next := filepath.Dir(dir)
		if next == dir {
			t.Fatalf("repo root not found from %s", start)
		}
		dir = next
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
