package webserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurity(t *testing.T) {
	t.Run("requireMultipart", func(t *testing.T) {
		tests := []struct {
			name        string
			contentType string
			expectError bool
		}{
			{"multipart with boundary", "multipart/form-data; boundary=xyz", false},
			{"upper case media type", "Multipart/Form-Data; boundary=xyz", false},
			{"missing header", "", true},
			{"urlencoded form", "application/x-www-form-urlencoded", true},
			{"json", "application/json", true},
			{"malformed", "multipart/form-data; boundary", true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/", nil)
				if tt.contentType != "" {
					req.Header.Set("Content-Type", tt.contentType)
				}

				err := requireMultipart(req)
				if tt.expectError {
					assert.ErrorIs(t, err, errNotMultipart)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("limitBody rejects declared length", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))

		err := limitBody(httptest.NewRecorder(), req, 10)
		require.Error(t, err)
		assert.True(t, isUploadTooLarge(err))
	})

	t.Run("limitBody caps streamed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1

		require.NoError(t, limitBody(httptest.NewRecorder(), req, 10))

		_, err := io.ReadAll(req.Body)
		assert.True(t, isUploadTooLarge(err))
	})

	t.Run("baseWriter unwraps middleware", func(t *testing.T) {
		base := httptest.NewRecorder()
		wrapped := &statusRecorder{
			ResponseWriter: &compressResponseWriter{ResponseWriter: base, writer: io.Discard},
		}

		assert.Same(t, base, baseWriter(wrapped))
		assert.Same(t, base, baseWriter(base))
	})

	t.Run("uploadFileName", func(t *testing.T) {
		tests := []struct {
			name        string
			disposition string
			fallback    string
			expected    string
		}{
			{"keeps directories", `form-data; name="file"; filename="notes/2024/report.txt"`, "report.txt", "notes/2024/report.txt"},
			{"plain name", `form-data; name="file"; filename="a.txt"`, "a.txt", "a.txt"},
			{"no filename parameter", `form-data; name="file"`, "fallback.txt", "fallback.txt"},
			{"malformed header", `form-data; filename`, "fallback.txt", "fallback.txt"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				header := &multipart.FileHeader{
					Filename: tt.fallback,
					Header:   textproto.MIMEHeader{"Content-Disposition": {tt.disposition}},
				}

				assert.Equal(t, tt.expected, uploadFileName(header))
			})
		}
	})

	t.Run("isUploadTooLarge", func(t *testing.T) {
		assert.True(t, isUploadTooLarge(fmt.Errorf("wrapped: %w", &http.MaxBytesError{Limit: 1})))
		assert.False(t, isUploadTooLarge(errors.New("http: request body too large")))
		assert.False(t, isUploadTooLarge(nil))
	})
}
