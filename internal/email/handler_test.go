package email

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler() *Handler {
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleSend(t *testing.T) {
	t.Run("sends a valid email", func(t *testing.T) {
		h := newTestHandler()

		body := `{"to":"jane@example.com","subject":"Order Confirmation: ORD-1-ABCDE","body":"Thanks!"}`
		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}

		var resp sendResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Status != "sent" {
			t.Errorf("expected status 'sent', got %s", resp.Status)
		}
	})

	t.Run("rejects a missing recipient", func(t *testing.T) {
		h := newTestHandler()

		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(`{"subject":"no one"}`))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects an invalid body", func(t *testing.T) {
		h := newTestHandler()

		req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		h.HandleSend(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}
