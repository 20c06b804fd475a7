package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/middleware"
	"yaarfetch-be/internal/offer"
)

type OfferHandler struct {
	svc offer.Service
}

func NewOfferHandler(svc offer.Service) *OfferHandler {
	return &OfferHandler{svc: svc}
}

type createOfferRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Price   float64 `json:"price" binding:"required"`
	Note    string  `json:"note"`
}

type updateOfferRequest struct {
	Status *string  `json:"status"`
	Price  *float64 `json:"price"`
}

type offerResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	CourierID string    `json:"courier_id"`
	Price     float64   `json:"price"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOfferResponse(o *offer.Offer) offerResponse {
	return offerResponse{
		ID:        o.ID,
		OrderID:   o.OrderID,
		CourierID: o.CourierID,
		Price:     o.Price,
		Note:      o.Note,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOfferResponses(offers []*offer.Offer) []offerResponse {
	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	return out
}

// Create handles POST /api/offers.
func (h *OfferHandler) Create(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	o, err := h.svc.CreateOffer(c.Request.Context(), actorID, offer.CreateOfferInput{
		OrderID: req.OrderID,
		Price:   req.Price,
		Note:    req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOfferResponse(o))
}

// List handles GET /api/offers?order=... — offers for one order in
// submission order.
func (h *OfferHandler) List(c *gin.Context) {
	limit, page := pageParams(c)

	offers, err := h.svc.ListOffersForOrder(c.Request.Context(), c.Query("order"), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOfferResponses(offers))
}

// ListMine handles GET /api/offers/my-offers.
func (h *OfferHandler) ListMine(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	limit, page := pageParams(c)

	offers, err := h.svc.ListMyOffers(c.Request.Context(), actorID, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOfferResponses(offers))
}

// Get handles GET /api/offers/:id.
func (h *OfferHandler) Get(c *gin.Context) {
	o, err := h.svc.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(o))
}

// Update handles PUT /api/offers/:id. A courier may withdraw their
// pending offer or adjust its price; acceptance goes through the match
// endpoint.
func (h *OfferHandler) Update(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req updateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	switch {
	case req.Status != nil:
		if offer.Status(*req.Status) != offer.StatusWithdrawn {
			respondError(c, apperr.Validation("only WITHDRAWN may be requested on an offer"))
			return
		}
		o, err := h.svc.WithdrawOffer(c.Request.Context(), c.Param("id"), actorID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOfferResponse(o))

	case req.Price != nil:
		o, err := h.svc.UpdateOfferPrice(c.Request.Context(), c.Param("id"), actorID, *req.Price)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOfferResponse(o))

	default:
		respondError(c, apperr.Validation("nothing to update"))
	}
}

// Delete handles DELETE /api/offers/:id as a withdraw alias; the offer
// row is kept for history.
func (h *OfferHandler) Delete(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	o, err := h.svc.WithdrawOffer(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(o))
}
