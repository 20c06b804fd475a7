package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/match"
	"yaarfetch-be/internal/middleware"
)

type MatchHandler struct {
	svc match.Service
}

func NewMatchHandler(svc match.Service) *MatchHandler {
	return &MatchHandler{svc: svc}
}

type createMatchRequest struct {
	OfferID string `json:"offer_id" binding:"required"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type matchResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	OfferID     string    `json:"offer_id"`
	RequesterID string    `json:"requester_id"`
	CourierID   string    `json:"courier_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toMatchResponse(m *match.Match) matchResponse {
	return matchResponse{
		ID:          m.ID,
		OrderID:     m.OrderID,
		OfferID:     m.OfferID,
		RequesterID: m.RequesterID,
		CourierID:   m.CourierID,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMatchResponses(matches []*match.Match) []matchResponse {
	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, toMatchResponse(m))
	}
	return out
}

// Create handles POST /api/matches — the requester accepts an offer.
func (h *MatchHandler) Create(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	m, err := h.svc.AcceptOffer(c.Request.Context(), req.OfferID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMatchResponse(m))
}

// UpdateStatus handles PUT /api/matches/:id/status.
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req updateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	m, err := h.svc.AdvanceMatch(c.Request.Context(), c.Param("id"), actorID, match.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMatchResponse(m))
}

// ListMine handles GET /api/matches — matches the caller participates in.
func (h *MatchHandler) ListMine(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	limit, page := pageParams(c)

	matches, err := h.svc.ListMyMatches(c.Request.Context(), actorID, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMatchResponses(matches))
}

// ListForOrder handles GET /api/matches/order/:orderId.
func (h *MatchHandler) ListForOrder(c *gin.Context) {
	limit, page := pageParams(c)

	matches, err := h.svc.ListMatchesForOrder(c.Request.Context(), c.Param("orderId"), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMatchResponses(matches))
}

// ListForOffer handles GET /api/matches/offer/:offerId.
func (h *MatchHandler) ListForOffer(c *gin.Context) {
	limit, page := pageParams(c)

	matches, err := h.svc.ListMatchesForOffer(c.Request.Context(), c.Param("offerId"), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMatchResponses(matches))
}

// Get handles GET /api/matches/:id.
func (h *MatchHandler) Get(c *gin.Context) {
	m, err := h.svc.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMatchResponse(m))
}
