package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// CatalogController serves the admin screens for subjects, chapters,
// quizzes and questions.
type CatalogController struct {
	base
	catalog  *services.Catalog
	exporter *services.Exporter
}

func NewCatalogController(catalog *services.Catalog, exporter *services.Exporter, sessions *services.Sessions) *CatalogController {
	return &CatalogController{base: base{sessions: sessions}, catalog: catalog, exporter: exporter}
}

// GET /admin/dashboard
func (h *CatalogController) Dashboard(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	stats, err := h.catalog.Stats(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	subjects, err := h.catalog.ListSubjects(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "subjects": subjects})
}

// GET /admin/subjects
func (h *CatalogController) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// POST /admin/subjects/add
func (h *CatalogController) CreateSubject(c *gin.Context) {
	var input services.SubjectInput
	if !bind(c, &input) {
		return
	}
	subject, err := h.catalog.CreateSubject(c.Request.Context(), middleware.CurrentPrincipal(c), input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subject added", "subject": subject})
}

// GET /admin/subjects/edit/:id
func (h *CatalogController) GetSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	subject, err := h.catalog.GetSubject(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject})
}

// POST /admin/subjects/edit/:id
func (h *CatalogController) UpdateSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.SubjectInput
	if !bind(c, &input) {
		return
	}
	subject, err := h.catalog.UpdateSubject(c.Request.Context(), middleware.CurrentPrincipal(c), id, input)
	if err != nil {
		h.fail(c, err, input)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subject updated", "subject": subject})
}

// POST /admin/subjects/delete/:id
func (h *CatalogController) DeleteSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.catalog.DeleteSubject(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subject deleted", "deleted": report})
}
