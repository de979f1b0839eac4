package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/handler"
)

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("html for regular requests", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.Templ(text("<div id=\"display\">7</div>"), handler.WithTarget("#display")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `<div id="display">7</div>`, rec.Body.String())
	})

	t.Run("patch for datastar requests", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.Templ(text("<div>7</div>"), handler.WithTarget("#display"), handler.WithPatchMode(handler.PatchInner)).
			Render(rec, datastarPost(`{}`))
		require.NoError(t, err)
		body := rec.Body.String()
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "#display")
		assert.Contains(t, body, "<div>7</div>")
	})

	t.Run("status for regular requests", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.TemplWithStatus(http.StatusNotFound, text("missing")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial or full", func(t *testing.T) {
		t.Parallel()
		resp := handler.TemplPartial(text("partial"), text("full"))

		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "full", rec.Body.String())

		rec = httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, datastarPost(`{}`)))
		assert.Contains(t, rec.Body.String(), "partial")
		assert.NotContains(t, rec.Body.String(), "full")
	})
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(handler.StreamContext) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stream", nil))
		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("streams components and signals", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()

		err := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendComponent(text("<div>1</div>"), handler.WithTarget("#display")); err != nil {
				return err
			}
			return stream.SendSignal("mode", "updated")
		}).Render(rec, req)
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "<div>1</div>")
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"mode":"updated"`)
	})

	t.Run("ends with the client", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
		req.Header.Set("Accept", "text/event-stream")

		done := make(chan error, 1)
		go func() {
			done <- handler.SSE(func(stream handler.StreamContext) error {
				<-stream.Done()
				return nil
			}).Render(httptest.NewRecorder(), req)
		}()

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("stream did not end")
		}
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSON(map[string]string{"current": "7"},
			handler.WithJSONMeta(map[string]any{"seq": 3}),
		).Render(rec, httptest.NewRequest(http.MethodGet, "/state", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data map[string]string `json:"data"`
			Meta map[string]any    `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "7", body.Data["current"])
		assert.InDelta(t, 3, body.Meta["seq"], 0)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found"},
			{"joined http error", errors.Join(handler.ErrBadRequest, errors.New("x")), http.StatusBadRequest, "bad_request"},
			{"plain", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				rec := httptest.NewRecorder()
				require.NoError(t, handler.JSON(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
				assert.Equal(t, tt.status, rec.Code)
				var body handler.JSONResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.code, body.Error.Code)
			})
		}
	})

	t.Run("status option", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSON("ok", handler.WithJSONStatus(http.StatusAccepted)).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodPost, "/press", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(rec, httptest.NewRequest(http.MethodPost, "/press", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
