package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// IngredientHandler handles ingredient-related HTTP requests
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List handles listing ingredients
// @Summary List Ingredients
// @Tags ingredients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	response.OK(c, "Ingredients retrieved successfully", gin.H{
		"ingredients": h.ingredientService.ListIngredients(),
	})
}

// Get handles fetching a single ingredient
// @Summary Get Ingredient
// @Tags ingredients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ingredient ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ing, err := h.ingredientService.GetIngredient(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient retrieved successfully", gin.H{"ingredient": ing})
}

// Create handles ingredient creation
// @Summary Create Ingredient
// @Tags ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateIngredientRequest true "Ingredient data"
// @Success 201 {object} response.APIResponse
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c *gin.Context) {
	var req request.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, ok := userContext(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ing, err := h.ingredientService.CreateIngredient(ctx, &service.CreateIngredientInput{
		Name:        req.Name,
		StockQty:    req.StockQty,
		MinStock:    req.MinStock,
		Cost:        req.Cost,
		PackageCost: req.PackageCost,
		PackageQty:  req.PackageQty,
		ShippingFee: req.ShippingFee,
		PriceBuffer: req.PriceBuffer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ingredient created successfully", gin.H{"ingredient": ing})
}

// Update handles a partial ingredient update
// @Summary Update Ingredient
// @Tags ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ingredient ID"
// @Param request body request.UpdateIngredientRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /ingredients/{id} [put]
func (h *IngredientHandler) Update(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req request.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ing, err := h.ingredientService.UpdateIngredient(ctx, id, &service.UpdateIngredientInput{
		Name:        req.Name,
		StockQty:    req.StockQty,
		MinStock:    req.MinStock,
		Cost:        req.Cost,
		PackageCost: req.PackageCost,
		PackageQty:  req.PackageQty,
		ShippingFee: req.ShippingFee,
		PriceBuffer: req.PriceBuffer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient updated successfully", gin.H{"ingredient": ing})
}

// Delete handles ingredient deletion
// @Summary Delete Ingredient
// @Tags ingredients
// @Security BearerAuth
// @Param id path string true "Ingredient ID"
// @Success 200 {object} response.APIResponse
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.ingredientService.DeleteIngredient(ctx, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ingredient deleted successfully", nil)
}

// Duplicate handles copying an ingredient
// @Summary Duplicate Ingredient
// @Tags ingredients
// @Security BearerAuth
// @Param id path string true "Ingredient ID"
// @Success 201 {object} response.APIResponse
// @Router /ingredients/{id}/duplicate [post]
func (h *IngredientHandler) Duplicate(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ing, err := h.ingredientService.DuplicateIngredient(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ingredient duplicated successfully", gin.H{"ingredient": ing})
}
