package webserver

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"textstats/internal/textstats"
)

//go:embed www/*.html
var wwwFiles embed.FS

// UploadInfoMessage is returned by GET on the upload endpoint
const UploadInfoMessage = "This endpoint accepts POST requests only for file uploads."

// homePageData holds data for the welcome page template
type homePageData struct {
	Title          string
	UploadPagePath string
}

// uploadPageData holds data for the upload form template
type uploadPageData struct {
	UploadPath string
	FieldName  string
	Accept     string
}

// upload is one received file, fully read into memory
type upload struct {
	FileName string
	Content  []byte
}

func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "index.html", homePageData{
		Title:          "Welcome to the File Upload API",
		UploadPagePath: UploadPagePath,
	})
}

func (s *Server) UploadPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "upload.html", uploadPageData{
		UploadPath: UploadPath,
		FieldName:  UploadFieldName,
		Accept:     AcceptedFileTypes,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Error executing template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) UploadInfoHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, textstats.InfoResult{Info: UploadInfoMessage})
}

// UploadHandler reads the uploaded file and responds with its statistics.
// A file no decoder accepts is answered with status 200 and an error body.
func (s *Server) UploadHandler(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("handler", "UploadHandler")
	log.Info("Received upload request", "remote_addr", r.RemoteAddr)

	req, err := s.receiveUpload(w, r)
	if err != nil {
		errResp := CategorizeError(err)
		log.Warn("Failed to receive upload", "error", err, "code", errResp.Code)
		s.metrics.observeFailure(errResp.Code)
		WriteErrorResponse(w, err, statusForError(err))

		return
	}

	result, err := s.processor.Analyze(req.FileName, req.Content)
	if errors.Is(err, textstats.ErrUnsupportedEncoding) {
		log.Warn("Unsupported file encoding", "filename", req.FileName, "error", err)
		s.metrics.observeFailure("unsupported_encoding")
		sendJSON(w, http.StatusOK, textstats.ErrorResult{Error: textstats.UnsupportedEncodingMessage})

		return
	}

	if err != nil {
		log.Error("Request processing failed", "error", err)
		s.metrics.observeFailure("processing_error")
		WriteErrorResponse(w, err, http.StatusInternalServerError)

		return
	}

	s.metrics.observeUpload(result.Encoding, len(req.Content), result.NumWords, result.ExecutionTime)
	sendJSON(w, http.StatusOK, result)

	log.Info("Request processed",
		"filename", result.Filename,
		"encoding", result.Encoding,
		"num_words", result.NumWords,
		"execution_time", result.ExecutionTime)
}

func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	var req upload

	if err := requireMultipart(r); err != nil {
		return req, err
	}

	if err := limitBody(w, r, s.config.Upload.MaxFileSize); err != nil {
		return req, fmt.Errorf("upload rejected: %w", err)
	}

	err := r.ParseMultipartForm(s.config.Upload.MaxMemorySize)
	if err != nil {
		return req, fmt.Errorf("form parsing error: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(UploadFieldName)
	if err != nil {
		return req, fmt.Errorf("file retrieval error: %w", err)
	}
	defer file.Close()

	req.FileName = uploadFileName(header)

	req.Content, err = io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("file read error: %w", err)
	}

	return req, nil
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
}

func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
