package calculator

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

// defaultJournalLimit — сколько записей журнала отдаём без явного limit.
const defaultJournalLimit = 100

// Controller — маршруты разовых вычислений: calculate, journal.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/calculate", c.calculate)
	api.GET("/journal", c.journal)
}

// @Summary Выполнить вычисление
// @Description Принимает два числа и операцию (+, -, *, /), возвращает результат. Результат кэшируется и пишется в журнал.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Параметры вычисления"
// @Success 200 {object} CalculateResponse "Результат вычисления"
// @Failure 400 {object} CalculateResponse "Невалидный запрос или неизвестная операция"
// @Failure 422 {object} CalculateResponse "Деление на ноль или переполнение"
// @Failure 500 {object} CalculateResponse "Внутренняя ошибка сервера"
// @Router /api/v1/calculate [post]
func (c *Controller) calculate(ctx *gin.Context) {
	var req CalculateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("calculate bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: "invalid request: " + err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.log.Warn("calculate validation failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
		return
	}

	op, err := c.uc.Calculate(ctx.Request.Context(), *req.Number1, *req.Number2, req.Operation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownOperation):
			c.log.Warn("calculate bad operation", "error", err)
			ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
		case errors.Is(err, domain.ErrDivideByZero), errors.Is(err, domain.ErrOverflow):
			ctx.JSON(http.StatusUnprocessableEntity, CalculateResponse{Message: err.Error()})
		default:
			c.log.Error("calculate failed", "error", err)
			ctx.JSON(http.StatusInternalServerError, CalculateResponse{Message: err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, CalculateResponse{Result: op.Result, Message: op.Message})
}

// @Summary Журнал операций
// @Description Возвращает последние операции из журнала (новые сначала)
// @Tags calculator
// @Produce json
// @Param limit query int false "Сколько записей вернуть (по умолчанию 100)"
// @Success 200 {object} JournalResponse "Список операций"
// @Failure 400 {object} ErrorResponse "Невалидный limit"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/journal [get]
func (c *Controller) journal(ctx *gin.Context) {
	limit := defaultJournalLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	list, err := c.uc.History(ctx.Request.Context(), limit)
	if err != nil {
		c.log.Error("journal failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	items := make([]JournalItem, len(list))
	for i, op := range list {
		items[i] = JournalItem{
			ID:        op.ID,
			SessionID: op.SessionID,
			Number1:   op.Number1,
			Number2:   op.Number2,
			Operation: op.Operation,
			Result:    op.Result,
			Message:   op.Message,
			Timestamp: op.Timestamp,
		}
	}
	ctx.JSON(http.StatusOK, JournalResponse{Items: items})
}
