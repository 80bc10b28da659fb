package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	catalogapp "github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	"github.com/oksasatya/go-marketplace-ddd/pkg/response"
	"github.com/oksasatya/go-marketplace-ddd/pkg/validation"
)

type ProductHandler struct {
	Svc    *catalogapp.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *catalogapp.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

func productView(p *entity.Product) gin.H {
	skus := make([]gin.H, 0, len(p.Skus()))
	for _, s := range p.Skus() {
		skus = append(skus, gin.H{
			"id":       s.ID(),
			"code":     s.Code(),
			"price":    s.Price().Amount().String(),
			"currency": s.Price().Currency(),
			"active":   s.IsActive(),
		})
	}
	return gin.H{
		"id":           p.ID(),
		"name":         p.Name().Value(),
		"slug":         p.Slug().Value(),
		"type":         p.Type().String(),
		"status":       p.Status().String(),
		"return_days":  p.ReturnDays(),
		"skus":         skus,
		"category_ids": p.CategoryIDs(),
		"orderable":    p.CanBeOrdered(),
		"created_at":   p.CreatedAt(),
		"updated_at":   p.UpdatedAt(),
	}
}

var productTypes = map[string]entity.ProductType{
	"physical": entity.ProductTypePhysical,
	"digital":  entity.ProductTypeDigital,
	"service":  entity.ProductTypeService,
}

type createProductRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=physical digital service"`
	ReturnDays *int   `json:"return_days"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), catalogapp.CreateProductInput{
		Name:        req.Name,
		ProductType: productTypes[req.Type],
		ReturnDays:  req.ReturnDays,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, productView(p), "product created", nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product", nil)
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.Svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product", nil)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.Svc.ListByCategory(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, productView(p))
	}
	response.Success(c, http.StatusOK, out, "products", gin.H{"limit": limit, "offset": offset})
}

func (h *ProductHandler) Activate(c *gin.Context) {
	h.transition(c, h.Svc.Activate)
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.Svc.Deactivate)
}

func (h *ProductHandler) Discontinue(c *gin.Context) {
	h.transition(c, h.Svc.Discontinue)
}

func (h *ProductHandler) transition(c *gin.Context, fn func(ctx context.Context, id string) (*entity.Product, error)) {
	p, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "status updated", nil)
}

func (h *ProductHandler) UpdateReturnDays(c *gin.Context) {
	var req struct {
		ReturnDays *int `json:"return_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateReturnDays(c.Request.Context(), c.Param("id"), req.ReturnDays)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "return policy updated", nil)
}

type addSkuRequest struct {
	Code     string `json:"code" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,currency"`
}

func (h *ProductHandler) AddSku(c *gin.Context) {
	var req addSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddSku(c.Request.Context(), c.Param("id"), catalogapp.AddSkuInput{
		Code:     req.Code,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, productView(p), "sku added", nil)
}

func (h *ProductHandler) AddCategory(c *gin.Context) {
	p, err := h.Svc.AddToCategory(c.Request.Context(), c.Param("id"), c.Param("categoryID"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "category attached", nil)
}

func (h *ProductHandler) RemoveCategory(c *gin.Context) {
	p, err := h.Svc.RemoveFromCategory(c.Request.Context(), c.Param("id"), c.Param("categoryID"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "category detached", nil)
}

// UploadImage accepts a multipart file and stores it in GCS.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read image", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "image uploaded", nil)
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
