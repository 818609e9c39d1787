// internal/handlers/lesson/lesson_handler.go
package lesson

import (
	"strconv"

	"lingvo-service/internal/middleware"
	"lingvo-service/internal/pkg/response"
	"lingvo-service/internal/service/content"

	"github.com/gin-gonic/gin"
)

// sourceHeader tells the Mini App whether content came from the v2 endpoint
// or the legacy fallback.
const sourceHeader = "X-Content-Source"

type LessonHandler struct {
	client *content.Client
}

func NewLessonHandler(client *content.Client) *LessonHandler {
	return &LessonHandler{client: client}
}

// List proxies the lesson list for a module.
func (h *LessonHandler) List(c *gin.Context) {
	moduleRef := c.Query("module_ref")
	if moduleRef == "" {
		response.BadRequest(c, "module_ref is required", nil)
		return
	}

	opts := content.FetchOptions{
		Lang:   c.Query("lang"),
		UserID: strconv.FormatInt(middleware.UserID(c), 10),
	}

	lessons, source, err := h.client.Lessons(c.Request.Context(), moduleRef, opts)
	if err != nil {
		response.Error(c, 502, "content service unavailable", err)
		return
	}

	c.Header(sourceHeader, string(source))
	response.OK(c, "lessons", lessons)
}

// Get proxies one lesson detail.
func (h *LessonHandler) Get(c *gin.Context) {
	ref := c.Param("ref")

	opts := content.FetchOptions{
		Lang:   c.Query("lang"),
		UserID: strconv.FormatInt(middleware.UserID(c), 10),
	}

	detail, source, err := h.client.Lesson(c.Request.Context(), ref, opts)
	if err != nil {
		response.Error(c, 502, "content service unavailable", err)
		return
	}

	c.Header(sourceHeader, string(source))
	response.OK(c, "lesson", detail)
}
