package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEngineRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(file)
			assert.Contains(t, string(data), "PNG")
		}
		_, _ = w.Write([]byte(`{"success":true,"text":"Milk\nBread"}`))
	}))
	defer srv.Close()

	img, err := Decode(jpegBytes(t), "image/jpeg")
	require.NoError(t, err)
	defer img.Close()

	text, err := NewHTTPEngine(srv.URL, srv.Client()).Recognize(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "Milk\nBread", text)
}

func TestHTTPEngineFailures(t *testing.T) {
	img, err := Decode(jpegBytes(t), "image/jpeg")
	require.NoError(t, err)
	defer img.Close()

	t.Run("unreadable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()
		_, err := NewHTTPEngine(srv.URL, nil).Recognize(context.Background(), img)
		assert.Error(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		_, err := NewHTTPEngine(srv.URL, nil).Recognize(context.Background(), img)
		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := NewHTTPEngine("", nil).Recognize(context.Background(), img)
		assert.Error(t, err)
	})
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "milk\nbread", stripFences("```text\nmilk\nbread\n```"))
	assert.Equal(t, "eggs", stripFences("  eggs "))
}
