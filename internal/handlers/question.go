package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qanda/api/internal/models"
)

type questionRequest struct {
	Content string `json:"content" binding:"required"`
}

type questionStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type questionDetail struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) CreateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Code: "GEN-001", Message: err.Error()})
		return
	}

	question, err := h.questions.Create(c.Request.Context(), bearerToken(c), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, questionStatusResponse{ID: question.UUID, Status: "QUESTION CREATED"})
}

func (h HandlerSet) AllQuestions(c *gin.Context) {
	questions, err := h.questions.All(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questionDetails(questions)})
}

type editQuestionRequest struct {
	ID      string `json:"id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) EditQuestion(c *gin.Context) {
	var req editQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Code: "GEN-001", Message: err.Error()})
		return
	}

	question, err := h.questions.Edit(c.Request.Context(), bearerToken(c), req.ID, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, questionStatusResponse{ID: question.UUID, Status: "QUESTION EDITED"})
}

func (h HandlerSet) DeleteQuestion(c *gin.Context) {
	questionID := c.Param("questionId")

	if err := h.questions.Delete(c.Request.Context(), bearerToken(c), questionID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, questionStatusResponse{ID: questionID, Status: "QUESTION DELETED"})
}

func (h HandlerSet) QuestionsByUser(c *gin.Context) {
	questions, err := h.questions.AllByUser(c.Request.Context(), bearerToken(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questionDetails(questions)})
}

func questionDetails(questions []models.Question) []questionDetail {
	items := make([]questionDetail, 0, len(questions))
	for _, q := range questions {
		items = append(items, questionDetail{
			ID:        q.UUID,
			Content:   q.Content,
			Author:    q.Author.Username,
			CreatedAt: q.CreatedAt,
		})
	}
	return items
}
