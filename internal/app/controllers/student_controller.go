package controllers

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/app/services"
	"github.com/ravi1475/school-erp-backend/internal/middleware"
	"github.com/ravi1475/school-erp-backend/internal/pkg/helpers"
)

// StudentController handles admissions and student CRUD.
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// Admit handles a new admission submission
// @Summary Admit a new student
// @Description Accepts the flattened multipart admission form (dotted keys for nested groups, named file parts for documents) and creates the full student record atomically
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.APIResponse{data=dto.AdmissionResponse} "Student admitted successfully"
// @Failure 400 {object} dto.APIResponse "Missing required fields or invalid date"
// @Failure 409 {object} dto.APIResponse "Admission number already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/admissions [post]
func (c *StudentController) Admit(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid multipart form"))
		return
	}

	req := dto.ParseAdmissionForm(url.Values(form.Value))

	uploads := make(map[string]*multipart.FileHeader)
	for name, headers := range form.File {
		if len(headers) > 0 {
			uploads[name] = headers[0]
		}
	}

	student, err := c.studentService.Admit(ctx, req, uploads)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AdmissionResponse{
		ID:          student.ID,
		FirstName:   student.FirstName,
		LastName:    student.LastName,
		AdmissionNo: student.AdmissionNo,
	}, "Student admitted successfully"))
}

// ListStudents returns a page of students
// @Summary List students
// @Description Retrieves a paginated list of students for a school, each with all dependent records attached
// @Tags students
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param schoolId query int false "School filter (defaults to the configured school)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	schoolID, _ := strconv.ParseInt(ctx.Query("schoolId"), 10, 64)

	result, err := c.studentService.ListStudents(ctx, schoolID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, "Students retrieved successfully"))
}

// GetStudent returns one student aggregate
// @Summary Get student by ID
// @Description Retrieves a student with parent, session, transport, documents, education and other records
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid student ID"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student retrieved successfully"))
}

// UpdateStudent applies a partial update
// @Summary Update a student
// @Description Updates the student's root fields and, when present, parent fields in one transaction
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse "Student updated successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body"))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student updated successfully"))
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Description Deletes the student; all dependent records cascade
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted successfully"
// @Failure 400 {object} dto.APIResponse "Invalid student ID"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Student deleted successfully"))
}
