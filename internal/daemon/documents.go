package daemon

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lockin/internal/api"
	"lockin/internal/extract"
	"lockin/internal/logging"
	"lockin/internal/store"
)

// maxUploadBytes bounds document uploads.
const maxUploadBytes = 32 << 20

func (s *apiServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		docs, err := s.daemon.store.ListDocuments(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.DocumentListResponse{Documents: api.FromDocuments(docs)})
	case http.MethodPost:
		s.handleDocumentUpload(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "multipart field \"file\" required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	mimeType := detectMIME(header.Filename, header.Header.Get("Content-Type"))
	info := extract.Process(header.Filename, data, mimeType)

	doc := store.Document{
		Filename:   info.Name,
		FileType:   info.Type,
		UploadDate: time.Now(),
		FileSize:   info.Size,
		WordCount:  info.WordCount,
	}
	id, err := s.daemon.store.AddDocument(r.Context(), doc)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc.ID = id
	s.daemon.cacheContent(id, info.Content)

	logger := s.log(r.Context())
	logger.Info("document stored",
		slog.Int64(logging.FieldDocumentID, id),
		slog.String("filename", info.Name),
		slog.Int("words", info.WordCount))

	// Analysis runs off the request path; the stored row gains its result
	// once the provider responds.
	go s.daemon.analyzeDocument(context.WithoutCancel(r.Context()), id, info.Content)

	s.writeJSON(w, http.StatusCreated, api.DocumentResponse{
		Document: api.FromDocument(&doc),
		Content:  info.Content,
	})
}

func (s *apiServer) handleDocumentItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		doc, err := s.daemon.store.GetDocument(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if doc == nil {
			s.writeError(w, http.StatusNotFound, "document not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.DocumentResponse{Document: api.FromDocument(doc)})
	case r.Method == http.MethodPost && action == "analyze":
		s.handleDocumentAnalyze(w, r, id)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleDocumentAnalyze(w http.ResponseWriter, r *http.Request, id int64) {
	doc, err := s.daemon.store.GetDocument(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		s.writeError(w, http.StatusNotFound, "document not found")
		return
	}

	content, ok := s.daemon.cachedContent(id)
	if !ok {
		s.writeError(w, http.StatusConflict, "document content not available; re-upload to analyze")
		return
	}

	provider := s.daemon.Provider()
	result, err := provider.Analyze(r.Context(), content)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.daemon.store.SetDocumentAnalysis(r.Context(), id, string(encoded)); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, api.AnalysisResponse{
		DocumentID: id,
		Provider:   provider.Name(),
		Result: api.AnalysisResult{
			KeyTopics:       result.KeyTopics,
			Weightage:       result.Weightage,
			Summary:         result.Summary,
			QuestionFormats: result.QuestionFormats,
		},
	})
}

// analyzeDocument runs provider analysis in the background after an upload
// and persists the result. Failures are logged, never surfaced to the
// uploader.
func (d *Daemon) analyzeDocument(ctx context.Context, id int64, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	provider := d.Provider()
	logger := logging.WithContext(ctx, d.logger).With(
		slog.Int64(logging.FieldDocumentID, id),
		slog.String("provider", provider.Name()))

	result, err := provider.Analyze(ctx, content)
	if err != nil {
		logger.Warn("document analysis failed", slog.String("error", err.Error()))
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to encode analysis result", slog.String("error", err.Error()))
		return
	}
	if err := d.store.SetDocumentAnalysis(ctx, id, string(encoded)); err != nil {
		logger.Error("failed to persist analysis result", slog.String("error", err.Error()))
		return
	}
	logger.Info("document analysis stored", slog.Int("topics", len(result.KeyTopics)))
}

// detectMIME maps an upload to one of the supported document types, falling
// back to the declared content type.
func detectMIME(filename, declared string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extract.MIMEPDF
	case ".docx":
		return extract.MIMEDocx
	case ".txt", ".md", ".text":
		return extract.MIMEText
	}
	if mime, _, found := strings.Cut(declared, ";"); found {
		declared = mime
	}
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}
