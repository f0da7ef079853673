package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

type CourseHandler struct {
	courses service.ICourseService
	metrics *metrics.Metrics
}

func NewCourseHandler(courses service.ICourseService, m *metrics.Metrics) *CourseHandler {
	return &CourseHandler{courses: courses, metrics: m}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courses.CreateCourse(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.metrics.Inc(metrics.CoursesCreated)

	c.JSON(http.StatusCreated, types.CreateCourseResponse{
		Message: "Course created successfully!",
		Course:  types.NewCourseResponse(course),
	})
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := paramUUID(c, "id", "Course not found")
	if !ok {
		return
	}

	course, err := h.courses.GetCourse(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, course)
}
