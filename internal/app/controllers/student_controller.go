package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/app/services"
	"github.com/meric/studentbase/internal/middleware"
)

// StudentController handles student record endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// List returns the student records visible to the caller.
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/students [get]
func (sc *StudentController) List(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	students, err := sc.studentService.List(c.Request.Context(), sub)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// Get returns a single student record.
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/students/{id} [get]
func (sc *StudentController) Get(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Student ID must be a valid number")))
		return
	}

	student, err := sc.studentService.Get(c.Request.Context(), sub, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// Create adds a student record attributed to the caller.
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student fields"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/students [post]
func (sc *StudentController) Create(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	req, err := bindStudentRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.FormatBindingError(err)))
		return
	}

	student, err := sc.studentService.Create(c.Request.Context(), sub, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// Update fully overwrites a student record (admin only).
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.StudentRequest true "Student fields"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/students/{id} [put]
func (sc *StudentController) Update(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Student ID must be a valid number")))
		return
	}

	req, err := bindStudentRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.FormatBindingError(err)))
		return
	}

	student, err := sc.studentService.Update(c.Request.Context(), sub, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// Delete removes a student record (admin only).
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/students/{id} [delete]
func (sc *StudentController) Delete(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Student ID must be a valid number")))
		return
	}

	if err := sc.studentService.Delete(c.Request.Context(), sub, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "deleted"},
		Timestamp: time.Now(),
	})
}

// Stats returns record counts scoped to the caller's role.
// @Summary Get stats
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/stats [get]
func (sc *StudentController) Stats(c *gin.Context) {
	sub, ok := middleware.SubjectFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	stats, err := sc.studentService.Stats(c.Request.Context(), sub)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// parseID parses the :id path parameter.
func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// bindStudentRequest accepts both JSON and form submissions. Form mark
// values go through the same permissive parser as JSON ones.
func bindStudentRequest(c *gin.Context) (*dto.StudentRequest, error) {
	contentType := c.ContentType()
	if strings.Contains(contentType, "json") {
		var req dto.StudentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	return &dto.StudentRequest{
		Name:           c.PostForm("name"),
		Subject:        c.PostForm("subject"),
		Email:          c.PostForm("email"),
		RollNo:         c.PostForm("rollno"),
		Phone:          c.PostForm("phone"),
		UnitTest1Marks: dto.ParseMark(c.PostForm("unit_test1_marks")),
		UnitTest2Marks: dto.ParseMark(c.PostForm("unit_test2_marks")),
	}, nil
}
