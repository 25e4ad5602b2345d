package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stocks-api/database"
	"stocks-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentInput struct {
	Title   string `json:"title" binding:"required,min=5,max=280"`
	Content string `json:"content" binding:"required,min=5,max=280"`
}

type CommentHandler struct {
	comments *database.CommentRepository
	stocks   *database.StockRepository
	users    *database.UserRepository
	log      logrus.FieldLogger
}

func NewCommentHandler(comments *database.CommentRepository, stocks *database.StockRepository, users *database.UserRepository, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{comments: comments, stocks: stocks, users: users, log: log}
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.comments.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]CommentDto, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentDto(cm))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, fmt.Errorf("comment %d: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, toCommentDto(*comment))
}

// Create attaches a comment by the authenticated user to an existing stock.
func (h *CommentHandler) Create(c *gin.Context) {
	stockID, err := parseID(c, "stockId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}

	ctx := c.Request.Context()
	exists, err := h.stocks.Exists(ctx, stockID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !exists {
		respondError(c, h.log, invalidf("Stock does not exist"))
		return
	}

	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comment := models.Comment{
		Title:     input.Title,
		Content:   input.Content,
		CreatedOn: time.Now().UTC(),
		StockID:   stockID,
		UserID:    user.ID,
	}
	if err := h.comments.Create(ctx, &comment); err != nil {
		respondError(c, h.log, err)
		return
	}
	comment.User = *user

	c.Header("Location", fmt.Sprintf("/api/comment/%d", comment.ID))
	c.JSON(http.StatusCreated, toCommentDto(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, input.Title, input.Content)
	if err != nil {
		respondError(c, h.log, fmt.Errorf("comment %d: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, toCommentDto(*comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if _, err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, fmt.Errorf("comment %d: %w", id, err))
		return
	}
	c.Status(http.StatusNoContent)
}
