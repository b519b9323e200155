package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hms/internal/domain"
)

// @Summary Свободные окна для записи
// @Description Подбирает свободные временные окна врача на дату. Без doctor_id или с датой вне справочника дней недели возвращает пустой результат.
// @Tags Записи на прием
// @Accept json
// @Produce json
// @Param doctor_id query int false "ID врача"
// @Param date query string true "Дата приема (YYYY-MM-DD)"
// @Success 200 {object} domain.TimeSlotAvailability "Свободные окна по периодам дня"
// @Failure 400 {object} errorResponseBody "Неверный формат даты"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /appointments/bookable [get]
func (h *Handler) getBookableSlots(c *gin.Context) {
	var doctorID int64
	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		parsed, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат doctor_id")
			return
		}
		doctorID = parsed
	}

	date := c.Query("date")

	availability, err := h.services.Appointment.GetBookableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		h.logger.Error("ошибка при подборе свободных окон", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, availability)
}

// @Summary Создать запись на прием
// @Description Записывает текущего пользователя на прием к врачу в свободное окно
// @Tags Записи на прием
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 409 {object} errorResponseBody "Слот занят"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Error("ошибка при создании записи на прием", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Получить запись на прием
// @Description Возвращает запись на прием. Доступна участникам записи и администраторам.
// @Tags Записи на прием
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись на прием"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("ошибка при получении записи", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	if appointment == nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	if !h.canAccessAppointment(c, appointment) {
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Отменить запись на прием
// @Description Отменяет запись на прием. Доступна участникам записи и администраторам.
// @Tags Записи на прием
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Success 204 {object} nil "Запись отменена"
// @Failure 400 {object} errorResponseBody "Неверный формат ID или запись уже отменена"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}
	if appointment == nil {
		notFoundResponse(c, "запись не найдена")
		return
	}

	if !h.canAccessAppointment(c, appointment) {
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при отмене записи", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список записей на прием
// @Description Возвращает записи текущего пользователя. Администратор видит все записи.
// @Tags Записи на прием
// @Accept json
// @Produce json
// @Param status query string false "Статус записи"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Записи на прием"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	userRole, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := parseAppointmentFilter(c)

	if userRole != domain.UserRoleAdmin {
		filter.PatientID = &userID
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении записей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении записей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, appointments, total, page, filter.Limit)
}

func (h *Handler) canAccessAppointment(c *gin.Context, appointment *domain.Appointment) bool {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return false
	}

	userRole, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return false
	}

	if userRole == domain.UserRoleAdmin || appointment.PatientID == userID {
		return true
	}

	if userRole == domain.UserRoleDoctor {
		doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
		if err == nil && doctor != nil && doctor.ID == appointment.DoctorID {
			return true
		}
	}

	forbiddenResponse(c)
	return false
}

func parseAppointmentFilter(c *gin.Context) domain.AppointmentFilter {
	statusStr := c.DefaultQuery("status", "")
	var status *domain.AppointmentStatus
	if statusStr != "" {
		appStatus := domain.AppointmentStatus(statusStr)
		status = &appStatus
	}

	dateFrom := c.DefaultQuery("date_from", "")
	var startDate *time.Time
	if dateFrom != "" {
		parsedDate, err := time.Parse("2006-01-02", dateFrom)
		if err == nil {
			startDate = &parsedDate
		}
	}

	dateTo := c.DefaultQuery("date_to", "")
	var endDate *time.Time
	if dateTo != "" {
		parsedDate, err := time.Parse("2006-01-02", dateTo)
		if err == nil {
			parsedDate = parsedDate.Add(24 * time.Hour).Add(-time.Second)
			endDate = &parsedDate
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return domain.AppointmentFilter{
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
		Offset:    offset,
	}
}
