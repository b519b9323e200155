package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hms/internal/domain"
)

// @Summary Справочник дней недели
// @Description Возвращает справочник дней недели
// @Tags Расписание
// @Accept json
// @Produce json
// @Success 200 {array} domain.Weekday "Дни недели"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /weekdays [get]
func (h *Handler) getWeekdays(c *gin.Context) {
	weekdays, err := h.services.Catalog.Weekdays(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка при получении дней недели", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, weekdays)
}

// @Summary Справочник слотов
// @Description Возвращает справочник временных окон, сгруппированный по периодам дня
// @Tags Расписание
// @Accept json
// @Produce json
// @Success 200 {object} domain.SlotCatalog "Слоты по периодам дня"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /slots [get]
func (h *Handler) getSlotCatalog(c *gin.Context) {
	catalog, err := h.services.Catalog.SlotCatalog(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка при получении справочника слотов", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, catalog)
}

// @Summary Создать слот
// @Description Добавляет временное окно в справочник (только для администраторов)
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body domain.CreateSlotDTO true "Данные слота"
// @Success 201 {object} map[string]interface{} "ID созданного слота"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /slots [post]
func (h *Handler) createSlot(c *gin.Context) {
	var req domain.CreateSlotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateSlot(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании слота", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Слоты дня недели
// @Description Возвращает все слоты справочника для дня недели с пометкой, какие из них выбраны врачом, и флагом доступности дня. Без doctor_id аннотаций выбора нет.
// @Tags Расписание
// @Accept json
// @Produce json
// @Param weekday_id query int true "ID дня недели"
// @Param doctor_id query int false "ID врача"
// @Success 200 {object} domain.DaySlots "Слоты дня с настройками"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /slots/day [get]
func (h *Handler) getDaySlots(c *gin.Context) {
	weekdayID, err := strconv.ParseInt(c.Query("weekday_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат weekday_id")
		return
	}

	var doctorID int64
	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		doctorID, err = strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат doctor_id")
			return
		}
	}

	daySlots, err := h.services.Catalog.DaySlots(c.Request.Context(), doctorID, weekdayID)
	if err != nil {
		h.logger.Error("ошибка при получении слотов дня", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, daySlots)
}
