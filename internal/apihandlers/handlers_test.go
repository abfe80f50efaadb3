package apihandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pitstop/internal/costtracker"
	"pitstop/internal/services"
	"pitstop/pkg/categorizer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	outcome  services.ChatOutcome
	received []string
}

func (s *stubResponder) Respond(_ context.Context, message string) services.ChatOutcome {
	s.received = append(s.received, message)
	return s.outcome
}

func newTestRouter(t *testing.T, responder Responder, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	base := logrus.New()
	base.SetOutput(io.Discard)
	h := &APIHandler{StoreName: "MSPORTWAREHOUSE", Chat: responder, CostTracker: costtracker.New()}
	return NewRouter(h, origins, base)
}

func postChat(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Success(t *testing.T) {
	responder := &stubResponder{outcome: services.ChatOutcome{
		Reply:      "Sí, tenemos cascos Arai.",
		Categories: []categorizer.Category{categorizer.CategoryHelmets},
	}}
	router := newTestRouter(t, responder, nil)

	w := postChat(router, `{"message": "¿tienen cascos Arai?"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sí, tenemos cascos Arai.", resp.Response)
	assert.Equal(t, []string{"¿tienen cascos Arai?"}, responder.received)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChatHandler_FallbackStill200(t *testing.T) {
	responder := &stubResponder{outcome: services.ChatOutcome{
		Reply:    "Lo siento, no puedo responder en este momento.",
		Fallback: true,
		Err:      errors.New("upstream down"),
	}}
	router := newTestRouter(t, responder, nil)

	w := postChat(router, `{"message": "hola"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "Lo siento, no puedo responder en este momento."}`, w.Body.String())
}

func TestChatHandler_BadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"Not JSON", `message=hola`},
		{"Missing message", `{}`},
		{"Null message", `{"message": null}`},
		{"Wrong type", `{"message": 42}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			responder := &stubResponder{}
			router := newTestRouter(t, responder, nil)

			w := postChat(router, tc.body, nil)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "bad_request", resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.Empty(t, responder.received)
		})
	}
}

func TestChatHandler_BlankMessageIsAnswered(t *testing.T) {
	for _, body := range []string{`{"message": ""}`, `{"message": "   "}`} {
		responder := &stubResponder{outcome: services.ChatOutcome{Reply: "¡Hola! ¿En qué te ayudo?"}}
		router := newTestRouter(t, responder, nil)

		w := postChat(router, body, nil)

		require.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"response": "¡Hola! ¿En qué te ayudo?"}`, w.Body.String())
		require.Len(t, responder.received, 1)
	}
}

func TestChatHandler_CORS(t *testing.T) {
	router := newTestRouter(t, &stubResponder{outcome: services.ChatOutcome{Reply: "ok"}}, []string{"https://msportwarehouse.com"})

	w := postChat(router, `{"message": "hola"}`, map[string]string{"Origin": "https://msportwarehouse.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://msportwarehouse.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = postChat(router, `{"message": "hola"}`, map[string]string{"Origin": "https://other.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "ok"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatHandler_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, &stubResponder{}, []string{"https://msportwarehouse.com"})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://msportwarehouse.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://msportwarehouse.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://other.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoutes(t *testing.T) {
	router := newTestRouter(t, &stubResponder{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(t, &stubResponder{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "MSPORTWAREHOUSE", resp["store"])
	assert.Equal(t, 0.0, resp["total_cost_usd"])
	assert.Equal(t, map[string]interface{}{}, resp["cost_by_operation_usd"])
}

func TestHealthHandler_ReportsCostByOperation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracker := costtracker.New()
	require.NoError(t, tracker.RecordCost(context.Background(), costtracker.CostEvent{Operation: "chat", AmountUSD: 0.02}))
	base := logrus.New()
	base.SetOutput(io.Discard)
	router := NewRouter(&APIHandler{Chat: &stubResponder{}, CostTracker: tracker}, nil, base)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.02, resp["total_cost_usd"], 1e-9)
	assert.Equal(t, map[string]interface{}{"chat": 0.02}, resp["cost_by_operation_usd"])
	assert.NotContains(t, resp, "store")
}
