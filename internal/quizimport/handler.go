package quizimport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quizgym/internal/app/apiresp"
	"quizgym/internal/logging"
)

const defaultMaxUploadBytes = 10 << 20

type importService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

type Handler struct {
	svc            importService
	maxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiresp.WriteError(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	defaultTopicID, err := parseDefaultTopicID(r.FormValue("topic_id"))
	if err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Import(r.Context(), ImportRequest{
		Filename:       hdr.Filename,
		Content:        file,
		DefaultTopicID: defaultTopicID,
	})
	if err != nil {
		var missing *MissingColumnsError
		var processing *ProcessingError
		switch {
		case errors.Is(err, ErrUnsupportedFile):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &missing):
			apiresp.WriteError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &processing):
			logging.FromContext(r.Context()).Error("import failed", "filename", hdr.Filename, "error", err)
			apiresp.WriteError(w, r, http.StatusInternalServerError, err.Error())
		default:
			logging.FromContext(r.Context()).Error("import failed", "filename", hdr.Filename, "error", err)
			apiresp.WriteError(w, r, http.StatusInternalServerError, "Error processing file: "+err.Error())
		}
		return
	}

	w.Header().Set("X-Import-ID", res.ID.String())
	apiresp.WriteOK(w, r, http.StatusOK, res.Report)
}

func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	raw, err := BuildTemplate()
	if err != nil {
		logging.FromContext(r.Context()).Error("build template", "error", err)
		apiresp.WriteError(w, r, http.StatusInternalServerError, "failed to build template")
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+TemplateFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func parseDefaultTopicID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New("topic_id must be an integer")
	}
	return &id, nil
}
