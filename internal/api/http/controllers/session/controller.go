package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

// Controller — маршруты сессий калькулятора с клавиатурой.
type Controller struct {
	uc  ports.ISessionUseCase
	log *slog.Logger
}

// New создаёт контроллер сессий.
func New(uc ports.ISessionUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/sessions")

	api.POST("", c.open)
	api.GET("/:id", c.get)
	api.DELETE("/:id", c.close)
	api.POST("/:id/keys", c.press)
	api.DELETE("/:id/history", c.clearHistory)
}

// @Summary Открыть сессию
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /api/v1/sessions [post]
func (c *Controller) open(ctx *gin.Context) {
	view, err := c.uc.Open(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toResponse(view))
}

// @Summary Состояние сессии
// @Tags sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Сессии нет"
// @Router /api/v1/sessions/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	view, err := c.uc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(view))
}

// @Summary Нажать клавиши
// @Description Клавиши применяются по порядку до первой ошибки. При делении на ноль возвращается 422 и состояние с "Error" на дисплее.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body PressRequest true "Клавиши"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Неизвестная клавиша"
// @Failure 404 {object} map[string]string "Сессии нет"
// @Failure 422 {object} SessionResponse "Деление на ноль или переполнение"
// @Router /api/v1/sessions/{id}/keys [post]
func (c *Controller) press(ctx *gin.Context) {
	var req PressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("press bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	view, err := c.uc.Press(ctx.Request.Context(), ctx.Param("id"), req.Keys)
	if err != nil {
		if errors.Is(err, domain.ErrDivideByZero) || errors.Is(err, domain.ErrOverflow) {
			ctx.JSON(http.StatusUnprocessableEntity, toResponse(view))
			return
		}
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(view))
}

// @Summary Очистить историю сессии
// @Tags sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} SessionResponse
// @Router /api/v1/sessions/{id}/history [delete]
func (c *Controller) clearHistory(ctx *gin.Context) {
	view, err := c.uc.ClearHistory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(view))
}

// @Summary Закрыть сессию
// @Tags sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Router /api/v1/sessions/{id} [delete]
func (c *Controller) close(ctx *gin.Context) {
	if err := c.uc.Close(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownKey):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.log.Error("session request failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
