package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/middleware"
	"yaarfetch-be/internal/review"
)

type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type createReviewRequest struct {
	MatchID   string `json:"match_id" binding:"required"`
	SubjectID string `json:"subject_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	AuthorID  string    `json:"author_id"`
	SubjectID string    `json:"subject_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(rv *review.Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID,
		MatchID:   rv.MatchID,
		AuthorID:  rv.AuthorID,
		SubjectID: rv.SubjectID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	rv, err := h.svc.CreateReview(c.Request.Context(), actorID, review.CreateReviewInput{
		MatchID:   req.MatchID,
		SubjectID: req.SubjectID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(rv))
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	rv, err := h.svc.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(rv))
}

// ListForUser handles GET /api/reviews/user/:userId — reviews received
// by the user, newest first.
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	limit, page := pageParams(c)

	reviews, err := h.svc.ListReviewsForUser(c.Request.Context(), c.Param("userId"), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	c.JSON(http.StatusOK, out)
}
