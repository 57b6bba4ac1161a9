package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/session"
	"github.com/Gunvolt24/wb_cart/internal/view/headless"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// SessionHeader — заголовок с идентификатором сессии страницы.
const SessionHeader = "X-Cart-Session"

// CartService — то, что HTTP-слой требует от реестра сессий.
type CartService interface {
	State(ctx context.Context, sessionID string) (headless.Snapshot, error)
	Products(ctx context.Context, sessionID string) ([]session.ProductCard, error)
	Dispatch(ctx context.Context, ev *domain.CartEvent) (headless.Snapshot, error)
}

type Handler struct {
	service    CartService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — reqTimeout <= 0 отключает таймаут обработки.
func NewHandler(service CartService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

// NewRouter — маршруты виджета корзины. serviceName != "" включает otelgin.
func NewRouter(h *Handler, staticDir, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/catalog", h.listProducts)

	cart := r.Group("/cart")
	cart.GET("", h.getCart)
	cart.POST("/items", h.addItem)
	cart.PUT("/items/:id/:color", h.setQuantity)
	cart.DELETE("/items/:id/:color", h.removeItem)
	cart.POST("/items/:id/:color/increase", h.increase)
	cart.POST("/items/:id/:color/decrease", h.decrease)
	cart.POST("/colors", h.selectColor)
	cart.POST("/panel/toggle", h.panel(domain.EventTogglePanel))
	cart.POST("/panel/open", h.panel(domain.EventOpenPanel))
	cart.POST("/panel/close", h.panel(domain.EventClosePanel))
	cart.POST("/checkout", h.checkout)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// ---------------------------- handlers ----------------------------

func (h *Handler) getCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	state, err := h.service.State(ctx, c.GetHeader(SessionHeader))
	if err != nil {
		h.fail(c, "State", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cards, err := h.service.Products(ctx, c.GetHeader(SessionHeader))
	if err != nil {
		h.fail(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

type addItemRequest struct {
	ProductID string  `json:"product_id"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
}

// addItem — либо товар каталога (product_id), либо явная позиция (id/name/price/color).
func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ev := domain.CartEvent{Type: domain.EventAddItem, ID: req.ID, Name: req.Name, Price: req.Price, Color: req.Color}
	if req.ProductID != "" {
		ev = domain.CartEvent{Type: domain.EventAddProduct, ProductID: req.ProductID}
	}
	h.dispatch(c, &ev)
}

type quantityRequest struct {
	Quantity *int    `json:"quantity"`
	Input    *string `json:"input"`
}

// setQuantity — {"quantity": n} или сырое значение поля ввода {"input": "3"}.
func (h *Handler) setQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	id, color := itemParams(c)
	switch {
	case req.Input != nil:
		h.dispatch(c, &domain.CartEvent{Type: domain.EventQuantityInput, ID: id, Color: color, Input: *req.Input})
	case req.Quantity != nil:
		h.dispatch(c, &domain.CartEvent{Type: domain.EventSetQuantity, ID: id, Color: color, Quantity: *req.Quantity})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity or input is required"})
	}
}

func (h *Handler) removeItem(c *gin.Context) {
	id, color := itemParams(c)
	h.dispatch(c, &domain.CartEvent{Type: domain.EventRemoveItem, ID: id, Color: color})
}

func (h *Handler) increase(c *gin.Context) {
	id, color := itemParams(c)
	h.dispatch(c, &domain.CartEvent{Type: domain.EventIncrease, ID: id, Color: color})
}

func (h *Handler) decrease(c *gin.Context) {
	id, color := itemParams(c)
	h.dispatch(c, &domain.CartEvent{Type: domain.EventDecrease, ID: id, Color: color})
}

type selectColorRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
}

func (h *Handler) selectColor(c *gin.Context) {
	var req selectColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	h.dispatch(c, &domain.CartEvent{Type: domain.EventSelectColor, ProductID: req.ProductID, Color: req.Color})
}

func (h *Handler) panel(t domain.EventType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, &domain.CartEvent{Type: t})
	}
}

type checkoutRequest struct {
	Confirm bool `json:"confirm"`
}

// checkout — ответ на подтверждение приходит в теле; без тела — отказ.
func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}
	h.dispatch(c, &domain.CartEvent{Type: domain.EventCheckout, Confirm: req.Confirm})
}

// ---------------------------- helpers ----------------------------

func (h *Handler) dispatch(c *gin.Context, ev *domain.CartEvent) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	ev.SessionID = c.GetHeader(SessionHeader)
	if ev.SessionID == "" {
		ev.SessionID = session.DefaultID
	}

	state, err := h.service.Dispatch(ctx, ev)
	if err != nil {
		h.fail(c, "Dispatch "+string(ev.Type), err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalidEvent), errors.Is(err, session.ErrInvalidSessionID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// itemParams — пара (id, color) из пути; "-" обозначает позицию без цвета.
func itemParams(c *gin.Context) (id, color string) {
	return c.Param("id"), httpx.ColorParam(c.Param("color"))
}
