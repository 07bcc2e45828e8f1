package httpserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/mselser95/hearthstone-cards/internal/cardtable"
	"github.com/mselser95/hearthstone-cards/pkg/types"
	"go.uber.org/zap"
)

// Greeting is the body of GET /.
const Greeting = "Hello!!"

// User-facing error messages, one per failure kind.
const (
	MessageAuth        = "Invalid Auth. Please check your Client ID and secret"
	MessageNotFound    = "Unknown card class: "
	MessageUnavailable = "Card service is unavailable. Please try again later"
)

// CardsHandler handles HTTP requests for card tables.
type CardsHandler struct {
	source       cardtable.Source
	logger       *zap.Logger
	statusCompat bool
	timeout      time.Duration
}

// NewCardsHandler creates a new cards handler. Each card lookup is bounded
// by timeout; a lookup that runs past it answers 504.
func NewCardsHandler(source cardtable.Source, logger *zap.Logger, statusCompat bool, timeout time.Duration) *CardsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &CardsHandler{
		source:       source,
		logger:       logger,
		statusCompat: statusCompat,
		timeout:      timeout,
	}
}

func (h *CardsHandler) build(r *http.Request, class string) ([]cardtable.Row, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	return cardtable.Build(ctx, h.source, class)
}

// CardsResponse represents the JSON response for a card table.
type CardsResponse struct {
	Class string          `json:"class"`
	Rows  []cardtable.Row `json:"rows"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleIndex handles GET / requests.
func (h *CardsHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Greeting))
}

// HandleCardsPage handles GET /{cardName} requests with an HTML table.
func (h *CardsHandler) HandleCardsPage(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "cardName")

	rows, err := h.build(r, class)
	if err != nil {
		status, message := h.describeError(r, class, err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(message))
		return
	}

	// Render into a buffer so a template failure never leaves a partial page.
	var buf bytes.Buffer
	err = cardtable.RenderHTML(&buf, class, rows)
	if err != nil {
		h.logger.Error("failed-to-render-cards", zap.String("class", class), zap.Error(err))
		http.Error(w, MessageUnavailable, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleCardsJSON handles GET /api/cards/{cardName} requests.
func (h *CardsHandler) HandleCardsJSON(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "cardName")

	rows, err := h.build(r, class)
	if err != nil {
		status, message := h.describeError(r, class, err)
		h.writeError(w, message, status)
		return
	}

	h.writeJSON(w, CardsResponse{Class: class, Rows: rows}, http.StatusOK)
}

// describeError logs err with its kind and maps it to a status and message.
func (h *CardsHandler) describeError(r *http.Request, class string, err error) (int, string) {
	kind := types.KindOf(err)

	var status int
	var message string

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, MessageUnavailable
	case kind == types.KindAuth:
		status, message = http.StatusUnauthorized, MessageAuth
	case kind == types.KindNotFound:
		status, message = http.StatusNotFound, MessageNotFound+class
	default:
		status, message = http.StatusBadGateway, MessageUnavailable
	}

	CardRequestErrorsTotal.WithLabelValues(string(kind)).Inc()
	h.logger.Warn("card-request-failed",
		zap.String("class", class),
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.String("request-id", middleware.GetReqID(r.Context())),
		zap.Error(err))

	if h.statusCompat {
		status = http.StatusOK
	}

	return status, message
}

func (h *CardsHandler) writeJSON(w http.ResponseWriter, response interface{}, statusCode int) {
	body, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
		http.Error(w, MessageUnavailable, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// writeError writes a JSON error response.
func (h *CardsHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: message}, statusCode)
}
