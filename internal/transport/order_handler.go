package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/middleware"
	"yaarfetch-be/internal/order"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderRequest struct {
	Description string  `json:"description" binding:"required"`
	Pickup      string  `json:"pickup" binding:"required"`
	Dropoff     string  `json:"dropoff" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Description string    `json:"description"`
	Pickup      string    `json:"pickup"`
	Dropoff     string    `json:"dropoff"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		RequesterID: o.RequesterID,
		Description: o.Description,
		Pickup:      o.Pickup,
		Dropoff:     o.Dropoff,
		Price:       o.Price,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperr.Forbidden("missing identity"))
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	o, err := h.svc.CreateOrder(c.Request.Context(), actorID, order.CreateOrderInput{
		Description: req.Description,
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(o))
}

// List handles GET /api/orders — open orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	limit, page := pageParams(c)

	orders, err := h.svc.ListOpenOrders(c.Request.Context(), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListMine handles GET /api/orders/my-orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	limit, page := pageParams(c)

	orders, err := h.svc.ListMyOrders(c.Request.Context(), actorID, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

// Update handles PUT /api/orders/:id. Cancellation is the only
// requester-driven status change; everything else happens through the
// match lifecycle.
func (h *OrderHandler) Update(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if order.Status(req.Status) != order.StatusCancelled {
		respondError(c, apperr.Validation("only CANCELLED may be requested on an order"))
		return
	}

	o, err := h.svc.CancelOrder(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}
