package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abdoElHodaky/matchcore/internal/matching"
	apierrors "github.com/abdoElHodaky/matchcore/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the matching engine over HTTP, grounded in
// order_handler.go's gin-binding + engine-delegation style.
type Handler struct {
	engine *matching.Engine
	logger *zap.Logger
}

// NewHandler creates a Handler wired to engine.
func NewHandler(engine *matching.Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// SubmitOrder handles POST /v1/orders.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apierrors.Wrap(apierrors.CodeMalformed, "invalid request body", err))
		return
	}

	side, err := parseSide(req.Side)
	if err != nil {
		h.respondError(c, apierrors.Wrap(apierrors.CodeMalformed, "invalid side", err))
		return
	}

	order := &matching.Order{
		ID:        matching.OrderID(req.OrderID),
		Symbol:    req.Symbol,
		Side:      side,
		Price:     req.Price,
		Volume:    req.Volume,
		Account:   req.Account,
		ExpireSec: req.ExpireSec,
	}

	trades, err := h.engine.AcceptOrder(order)
	if err != nil {
		h.respondError(c, translateEngineError(err))
		return
	}

	resp := SubmitOrderResponse{Order: toOrderView(order.Snapshot())}
	for _, t := range trades {
		resp.Trades = append(resp.Trades, toTradeView(t))
	}
	c.JSON(http.StatusOK, resp)
}

// CancelOrder handles DELETE /v1/orders/:id.
func (h *Handler) CancelOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.respondError(c, apierrors.Wrap(apierrors.CodeMalformed, "invalid order id", err))
		return
	}

	order, err := h.engine.CancelOrder(matching.OrderID(id))
	if err != nil {
		h.respondError(c, translateEngineError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderView(order))
}

// ViewBook handles GET /v1/books/:symbol.
func (h *Handler) ViewBook(c *gin.Context) {
	symbol := c.Param("symbol")

	size := -1
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(c, apierrors.New(apierrors.CodeMalformed, "size must be a non-negative integer"))
			return
		}
		size = n
	}

	includeExpired := c.Query("include_expired") == "true"

	view, err := h.engine.ViewOrders(symbol, size, includeExpired)
	if err != nil {
		h.respondError(c, translateEngineError(err))
		return
	}

	c.JSON(http.StatusOK, toBookViewResponse(view))
}

// ViewHistory handles GET /v1/trades.
func (h *Handler) ViewHistory(c *gin.Context) {
	trades := h.engine.ViewHistory()
	views := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		views = append(views, toTradeView(t))
	}
	c.JSON(http.StatusOK, gin.H{"trades": views})
}

func (h *Handler) respondError(c *gin.Context, apiErr *apierrors.APIError) {
	c.JSON(apiErr.Code.HTTPStatus(), apiErr)
}

func parseSide(raw string) (matching.Side, error) {
	switch raw {
	case "ask":
		return matching.Ask, nil
	case "bid":
		return matching.Bid, nil
	default:
		return 0, errors.New("side must be \"ask\" or \"bid\"")
	}
}

// translateEngineError maps internal/matching sentinel errors onto the
// API's error codes and their corresponding HTTP status.
func translateEngineError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, matching.ErrMalformed):
		return apierrors.Wrap(apierrors.CodeMalformed, "malformed order", err)
	case errors.Is(err, matching.ErrUnknownSymbol):
		return apierrors.Wrap(apierrors.CodeUnknownSymbol, "unknown symbol", err)
	case errors.Is(err, matching.ErrUnknownOrderID):
		return apierrors.Wrap(apierrors.CodeUnknownOrderID, "unknown order id", err)
	case errors.Is(err, matching.ErrDuplicateOrderID):
		return apierrors.Wrap(apierrors.CodeDuplicateOrderID, "duplicate order id", err)
	case errors.Is(err, matching.ErrQueueInvariantViolation):
		return apierrors.Wrap(apierrors.CodeQueueInvariant, "internal queue invariant violation", err)
	default:
		return apierrors.Wrap(apierrors.CodeInternal, "internal error", err)
	}
}
