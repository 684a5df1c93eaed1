package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// GET /admin/quizzes
func (h *CatalogController) QuizOverview(c *gin.Context) {
	rows, err := h.catalog.QuizOverview(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": rows})
}

// GET /admin/quizzes/select_chapter
func (h *CatalogController) SelectChapter(c *gin.Context) {
	choices, err := h.catalog.ChapterChoices(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": choices})
}

// GET /admin/chapters/:id/quizzes
func (h *CatalogController) ListQuizzes(c *gin.Context) {
	chapterID, ok := idParam(c, "id")
	if !ok {
		return
	}
	chapter, err := h.catalog.ListQuizzes(c.Request.Context(), middleware.CurrentPrincipal(c), chapterID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter, "quizzes": chapter.Quizzes})
}

// POST /admin/chapters/:id/quizzes/add
func (h *CatalogController) CreateQuiz(c *gin.Context) {
	chapterID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.QuizInput
	if !bind(c, &input) {
		return
	}
	quiz, err := h.catalog.CreateQuiz(c.Request.Context(), middleware.CurrentPrincipal(c), chapterID, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "quiz added", "quiz": quiz})
}

// GET /admin/quizzes/edit/:id
func (h *CatalogController) GetQuiz(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	quiz, err := h.catalog.GetQuiz(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}

// POST /admin/quizzes/edit/:id
func (h *CatalogController) UpdateQuiz(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.QuizInput
	if !bind(c, &input) {
		return
	}
	quiz, err := h.catalog.UpdateQuiz(c.Request.Context(), middleware.CurrentPrincipal(c), id, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quiz updated", "quiz": quiz})
}

// POST /admin/quizzes/delete/:id
func (h *CatalogController) DeleteQuiz(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.catalog.DeleteQuiz(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quiz deleted", "deleted": report})
}

// GET /admin/quizzes/:id/scores/export
func (h *CatalogController) ExportScores(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	filename, buf, err := h.exporter.QuizScores(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
