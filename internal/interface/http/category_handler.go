package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	catalogapp "github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	"github.com/oksasatya/go-marketplace-ddd/pkg/response"
	"github.com/oksasatya/go-marketplace-ddd/pkg/validation"
)

type CategoryHandler struct {
	Svc    *catalogapp.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *catalogapp.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

func categoryView(c *entity.Category) gin.H {
	return gin.H{
		"id":          c.ID(),
		"name":        c.Name().Value(),
		"slug":        c.Slug().Value(),
		"description": c.Description(),
		"parent_id":   c.ParentID(),
		"sort_order":  c.SortOrder(),
		"status":      c.Status().String(),
		"created_at":  c.CreatedAt(),
		"updated_at":  c.UpdatedAt(),
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), catalogapp.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryView(cat), "category created", nil)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category", nil)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category", nil)
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ClearDesc   bool    `json:"clear_description"`
	SortOrder   *int    `json:"sort_order"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), c.Param("id"), catalogapp.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ClearDesc:   req.ClearDesc,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category updated", nil)
}

// ChangeParent PUT /api/categories/:id/parent {parent_id}
// A null parent_id makes the category a root. Reparenting onto a descendant
// is refused with a 409.
func (h *CategoryHandler) ChangeParent(c *gin.Context) {
	var req struct {
		ParentID *string `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.ChangeParent(c.Request.Context(), c.Param("id"), req.ParentID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category reparented", nil)
}

func (h *CategoryHandler) Activate(c *gin.Context) {
	cat, err := h.Svc.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category activated", nil)
}

func (h *CategoryHandler) Deactivate(c *gin.Context) {
	cat, err := h.Svc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category deactivated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	cat, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryView(cat), "category deleted", nil)
}

func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.Svc.Tree(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree, "category tree", nil)
}

func (h *CategoryHandler) ListChildren(c *gin.Context) {
	var parentID *string
	if id := c.Query("parent_id"); id != "" {
		parentID = &id
	}
	list, err := h.Svc.ListChildren(c.Request.Context(), parentID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cat := range list {
		out = append(out, categoryView(cat))
	}
	response.Success(c, http.StatusOK, out, "categories", nil)
}
