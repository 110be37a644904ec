package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/app/services"
	"github.com/ravi1475/school-erp-backend/internal/middleware"
)

// CertificateController handles transfer certificates.
type CertificateController struct {
	certificateService *services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// Issue issues a transfer certificate
// @Summary Issue a transfer certificate
// @Description Issues a transfer certificate for the student and marks them TRANSFERRED, atomically
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.IssueCertificateRequest true "Certificate details"
// @Success 201 {object} dto.APIResponse "Certificate issued successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 409 {object} dto.APIResponse "Student already transferred"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id}/certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	certificate, err := c.certificateService.Issue(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(certificate, "Certificate issued successfully"))
}

// GetForStudent returns the certificate issued to a student
// @Summary Get a student's transfer certificate
// @Tags certificates
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Certificate retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Router /students/{id}/certificates [get]
func (c *CertificateController) GetForStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	certificate, err := c.certificateService.GetForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate, "Certificate retrieved successfully"))
}

// List returns all certificates issued by a school
// @Summary List transfer certificates
// @Tags certificates
// @Produce json
// @Param schoolId query int true "School ID"
// @Success 200 {object} dto.APIResponse "Certificates retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid school ID"
// @Router /certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	schoolID, err := strconv.ParseInt(ctx.Query("schoolId"), 10, 64)
	if err != nil || schoolID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid school ID"))
		return
	}

	certificates, err := c.certificateService.List(ctx, schoolID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificates, "Certificates retrieved successfully"))
}
