package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func toIngredientRefs(refs []request.RecipeIngredientRequest) ([]service.RecipeIngredientInput, bool) {
	out := make([]service.RecipeIngredientInput, 0, len(refs))
	for _, ref := range refs {
		id, err := uuid.Parse(ref.IngredientID)
		if err != nil {
			return nil, false
		}
		out = append(out, service.RecipeIngredientInput{
			IngredientID: entity.ConfirmedID(id),
			Qty:          ref.Qty,
		})
	}
	return out, true
}

// List handles listing recipes
// @Summary List Recipes
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	response.OK(c, "Recipes retrieved successfully", gin.H{
		"recipes": h.recipeService.ListRecipes(),
	})
}

// Get handles fetching a single recipe
// @Summary Get Recipe
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipeService.GetRecipe(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe retrieved successfully", gin.H{"recipe": recipe})
}

// Create handles recipe creation
// @Summary Create Recipe
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateRecipeRequest true "Recipe data"
// @Success 201 {object} response.APIResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	var req request.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	refs, ok := toIngredientRefs(req.Ingredients)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID in ingredients")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	recipe, err := h.recipeService.CreateRecipe(ctx, &service.CreateRecipeInput{
		Name:        req.Name,
		Category:    req.Category,
		BatchSize:   req.BatchSize,
		Margin:      req.Margin,
		Price:       req.Price,
		DailyVolume: req.DailyVolume,
		Ingredients: refs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Recipe created successfully", gin.H{"recipe": recipe})
}

// Update handles a partial recipe update
// @Summary Update Recipe
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param request body request.UpdateRecipeRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req request.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateRecipeInput{
		Name:        req.Name,
		Category:    req.Category,
		BatchSize:   req.BatchSize,
		Margin:      req.Margin,
		Price:       req.Price,
		DailyVolume: req.DailyVolume,
	}
	if req.Ingredients != nil {
		refs, ok := toIngredientRefs(*req.Ingredients)
		if !ok {
			response.BadRequest(c, "Invalid ingredient ID in ingredients")
			return
		}
		input.Ingredients = &refs
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(ctx, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe updated successfully", gin.H{"recipe": recipe})
}

// Delete handles recipe deletion
// @Summary Delete Recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 200 {object} response.APIResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.recipeService.DeleteRecipe(ctx, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe deleted successfully", nil)
}

// Duplicate handles copying a recipe
// @Summary Duplicate Recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 201 {object} response.APIResponse
// @Router /recipes/{id}/duplicate [post]
func (h *RecipeHandler) Duplicate(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	recipe, err := h.recipeService.DuplicateRecipe(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Recipe duplicated successfully", gin.H{"recipe": recipe})
}
