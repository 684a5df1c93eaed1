package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// GET /admin/subjects/:id/chapters
func (h *CatalogController) ListChapters(c *gin.Context) {
	subjectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	subject, err := h.catalog.ListChapters(c.Request.Context(), middleware.CurrentPrincipal(c), subjectID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "chapters": subject.Chapters})
}

// POST /admin/subjects/:id/chapters/add
func (h *CatalogController) CreateChapter(c *gin.Context) {
	subjectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.ChapterInput
	if !bind(c, &input) {
		return
	}
	chapter, err := h.catalog.CreateChapter(c.Request.Context(), middleware.CurrentPrincipal(c), subjectID, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "chapter added", "chapter": chapter})
}

// GET /admin/chapters/edit/:id
func (h *CatalogController) GetChapter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	chapter, err := h.catalog.GetChapter(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": chapter})
}

// POST /admin/chapters/edit/:id
func (h *CatalogController) UpdateChapter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.ChapterInput
	if !bind(c, &input) {
		return
	}
	chapter, err := h.catalog.UpdateChapter(c.Request.Context(), middleware.CurrentPrincipal(c), id, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chapter updated", "chapter": chapter})
}

// POST /admin/chapters/delete/:id
func (h *CatalogController) DeleteChapter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.catalog.DeleteChapter(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted", "deleted": report})
}
