package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/app/services"
	"github.com/ravi1475/school-erp-backend/internal/middleware"
)

// SchoolController handles school tenants.
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// Create registers a school
// @Summary Create a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School details"
// @Success 201 {object} dto.APIResponse "School created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "School code already exists"
// @Router /schools [post]
func (c *SchoolController) Create(ctx *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	school, err := c.schoolService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(school, "School created successfully"))
}

// Get returns one school
// @Summary Get school by ID
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse "School retrieved successfully"
// @Failure 404 {object} dto.APIResponse "School not found"
// @Router /schools/{id} [get]
func (c *SchoolController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid school ID"))
		return
	}

	school, err := c.schoolService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(school, "School retrieved successfully"))
}

// List returns all schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Schools retrieved successfully"
// @Router /schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	schools, err := c.schoolService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(schools, "Schools retrieved successfully"))
}
