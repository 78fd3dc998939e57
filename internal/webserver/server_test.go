package webserver

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textstats/internal/config"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- srv.Serve(ctx, listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + UploadPath)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), UploadInfoMessage)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ChunkedUploadTooLargeClosesConnection(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Upload.MaxFileSize = 512
	})

	ts := httptest.NewServer(srv)
	defer ts.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(UploadFieldName, "big.txt")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("word "), 800))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	// MultiReader hides the length so the body is sent chunked
	req, err := http.NewRequest(http.MethodPost, ts.URL+UploadPath, io.MultiReader(&buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.Equal(t, int64(0), req.ContentLength)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.True(t, resp.Close, "connection should be closed after the body limit is hit")

	errResp := decodeJSON[ErrorResponse](t, resp.Body)
	assert.Equal(t, "upload_too_large", errResp.Code)
}
