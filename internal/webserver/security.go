package webserver

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
)

const (
	// UploadFieldName is the multipart field carrying the file
	UploadFieldName = "file"
	// AcceptedFileTypes is the accept attribute of the upload form
	AcceptedFileTypes = ".txt"
)

var errNotMultipart = errors.New("request content type is not multipart/form-data")

// requireMultipart checks the request declares a multipart/form-data body
func requireMultipart(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return errNotMultipart
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", errNotMultipart, err)
	}

	if mediaType != "multipart/form-data" {
		return fmt.Errorf("%w: got %s", errNotMultipart, mediaType)
	}

	return nil
}

// limitBody caps the number of bytes read from the request body. A declared
// Content-Length above the cap is rejected before anything is read.
func limitBody(w http.ResponseWriter, r *http.Request, maxSize int64) error {
	if r.ContentLength > maxSize {
		return &http.MaxBytesError{Limit: maxSize}
	}

	r.Body = http.MaxBytesReader(baseWriter(w), r.Body, maxSize)

	return nil
}

// baseWriter strips middleware wrappers so the server can close the
// connection once the body limit is hit
func baseWriter(w http.ResponseWriter) http.ResponseWriter {
	for {
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return w
		}
		w = u.Unwrap()
	}
}

// uploadFileName returns the filename parameter exactly as the client sent
// it. FileHeader.Filename has any directory components stripped.
func uploadFileName(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err == nil {
		if name, ok := params["filename"]; ok {
			return name
		}
	}

	return header.Filename
}

// isUploadTooLarge reports whether err comes from the body size limit
func isUploadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
