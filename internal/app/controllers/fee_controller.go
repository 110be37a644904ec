package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/app/services"
	"github.com/ravi1475/school-erp-backend/internal/middleware"
)

// FeeController handles fee structures and payment collection.
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// CreateStructure creates a fee structure
// @Summary Create a fee structure
// @Description Creates the annual fee breakdown for one class of a school
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeStructureRequest true "Fee structure"
// @Success 201 {object} dto.APIResponse "Fee structure created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "Fee structure already exists for this class"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /fees/structures [post]
func (c *FeeController) CreateStructure(ctx *gin.Context) {
	var req dto.CreateFeeStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	structure, err := c.feeService.CreateStructure(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(structure, "Fee structure created successfully"))
}

// ListStructures lists a school's fee structures
// @Summary List fee structures
// @Description Retrieves all fee structures for a school
// @Tags fees
// @Produce json
// @Param schoolId query int true "School ID"
// @Success 200 {object} dto.APIResponse "Fee structures retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid school ID"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /fees/structures [get]
func (c *FeeController) ListStructures(ctx *gin.Context) {
	schoolID, err := strconv.ParseInt(ctx.Query("schoolId"), 10, 64)
	if err != nil || schoolID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid school ID"))
		return
	}

	structures, err := c.feeService.ListStructures(ctx, schoolID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(structures, "Fee structures retrieved successfully"))
}

// GetStructure returns one fee structure
// @Summary Get fee structure by ID
// @Tags fees
// @Produce json
// @Param id path int true "Fee structure ID"
// @Success 200 {object} dto.APIResponse "Fee structure retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Fee structure not found"
// @Router /fees/structures/{id} [get]
func (c *FeeController) GetStructure(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid fee structure ID"))
		return
	}

	structure, err := c.feeService.GetStructure(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(structure, "Fee structure retrieved successfully"))
}

// UpdateStructure replaces the fee heads of a structure
// @Summary Update a fee structure
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee structure ID"
// @Param request body dto.UpdateFeeStructureRequest true "New fee heads"
// @Success 200 {object} dto.APIResponse "Fee structure updated successfully"
// @Failure 404 {object} dto.APIResponse "Fee structure not found"
// @Router /fees/structures/{id} [put]
func (c *FeeController) UpdateStructure(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid fee structure ID"))
		return
	}

	var req dto.UpdateFeeStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	structure, err := c.feeService.UpdateStructure(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(structure, "Fee structure updated successfully"))
}

// DeleteStructure removes a fee structure
// @Summary Delete a fee structure
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee structure ID"
// @Success 200 {object} dto.APIResponse "Fee structure deleted successfully"
// @Failure 404 {object} dto.APIResponse "Fee structure not found"
// @Router /fees/structures/{id} [delete]
func (c *FeeController) DeleteStructure(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid fee structure ID"))
		return
	}

	if err := c.feeService.DeleteStructure(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Fee structure deleted successfully"))
}

// RecordPayment collects a payment from a student
// @Summary Record a fee payment
// @Description Records one collected payment against a student and generates a receipt number
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.APIResponse "Payment recorded successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id}/payments [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	payment, err := c.feeService.RecordPayment(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment, "Payment recorded successfully"))
}

// ListPayments lists a student's payments
// @Summary List fee payments for a student
// @Tags fees
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Payments retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id}/payments [get]
func (c *FeeController) ListPayments(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	payments, err := c.feeService.ListPayments(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payments, "Payments retrieved successfully"))
}

// GetBalance reports a student's outstanding balance
// @Summary Get a student's fee balance
// @Description Reports the annual fee total for the student's class, the amount collected, and the outstanding balance
// @Tags fees
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeeBalanceResponse} "Balance retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Student or fee structure not found"
// @Router /students/{id}/balance [get]
func (c *FeeController) GetBalance(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	balance, err := c.feeService.GetBalance(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(balance, "Balance retrieved successfully"))
}
