package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/auth"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/metrics"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/report"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/storage"
)

// Store is the persistence the HTTP layer works against.
type Store interface {
	auth.UserStore
	report.Source

	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (uint, error)

	CreateExpense(ctx context.Context, userID int64, in models.ExpenseInput) (int64, error)
	GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id, userID int64, in models.ExpenseInput) (int64, error)
	DeleteExpense(ctx context.Context, id, userID int64) (int64, error)
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)

	GetLimit(ctx context.Context, userID int64) (decimal.Decimal, error)
	SetLimit(ctx context.Context, userID int64, value decimal.Decimal) error
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store        Store
	accounts     *auth.Service
	reports      *report.Engine
	tokens       *auth.TokenIssuer
	requireToken bool
	log          *zap.Logger
	metrics      *metrics.Metrics
}

// Option configures NewHandlers.
type Option func(*Handlers)

// WithTokens enables bearer tokens. When required is set, every user-scoped
// route rejects requests without a valid token.
func WithTokens(issuer *auth.TokenIssuer, required bool) Option {
	return func(h *Handlers) {
		h.tokens = issuer
		h.requireToken = required && issuer != nil
	}
}

// WithClock resolves report windows against now instead of the wall clock.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		h.reports = h.reports.WithClock(now)
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store Store, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Handlers {
	h := &Handlers{
		store:    store,
		accounts: auth.NewService(store),
		reports:  report.NewEngine(store),
		log:      log,
		metrics:  m,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Envelope is the shape of every response body.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{Status: statusSuccess, Message: message, Data: data})
}

func failure(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: statusError, Message: message})
}

// fail maps err onto the error taxonomy and writes the envelope. Store
// errors are logged; their text never reaches the client.
func (h *Handlers) fail(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		failure(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		failure(c, http.StatusUnauthorized, "incorrect username or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, errTokenMismatch), errors.Is(err, errTokenRequired):
		failure(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		failure(c, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrConflict):
		failure(c, http.StatusConflict, "username or email already registered")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.log.Warn("store unavailable", zap.Error(err), zap.String("request_id", requestID(c)))
		failure(c, http.StatusServiceUnavailable, "store is busy, please retry")
	default:
		h.log.Error("request failed", zap.Error(err), zap.String("request_id", requestID(c)))
		failure(c, http.StatusInternalServerError, "internal server error")
	}
}

// DBCheck reports whether the store is reachable.
func (h *Handlers) DBCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	version, err := h.store.SchemaVersion(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "database connection is healthy", gin.H{"schema_version": version})
}

// Health is a liveness probe that does not touch the store.
func (h *Handlers) Health(c *gin.Context) {
	success(c, http.StatusOK, "ok", nil)
}

// Categories lists the suggested vocabularies for expense forms.
func (h *Handlers) Categories(c *gin.Context) {
	success(c, http.StatusOK, "", gin.H{
		"categories": models.Categories,
		"paymodes":   models.PayModes,
	})
}

// NotFound answers unknown routes.
func (h *Handlers) NotFound(c *gin.Context) {
	failure(c, http.StatusNotFound, "route not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	failure(c, http.StatusMethodNotAllowed, "method not allowed")
}
