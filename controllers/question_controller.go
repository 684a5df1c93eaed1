package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// GET /admin/quizzes/:id/questions
func (h *CatalogController) ListQuestions(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}
	quiz, err := h.catalog.ListQuestions(c.Request.Context(), middleware.CurrentPrincipal(c), quizID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz, "questions": quiz.Questions})
}

// POST /admin/quizzes/:id/questions/add
func (h *CatalogController) CreateQuestion(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.QuestionInput
	if !bind(c, &input) {
		return
	}
	question, err := h.catalog.CreateQuestion(c.Request.Context(), middleware.CurrentPrincipal(c), quizID, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "question added", "question": question})
}

// GET /admin/questions/:id/edit
func (h *CatalogController) GetQuestion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	question, err := h.catalog.GetQuestion(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}

// POST /admin/questions/:id/edit
func (h *CatalogController) UpdateQuestion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.QuestionInput
	if !bind(c, &input) {
		return
	}
	question, err := h.catalog.UpdateQuestion(c.Request.Context(), middleware.CurrentPrincipal(c), id, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question updated", "question": question})
}

// POST /admin/questions/:id/delete
func (h *CatalogController) DeleteQuestion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteQuestion(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
