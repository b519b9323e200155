package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hms/internal/domain"
)

const maxPhotoSize = 5 << 20

// @Summary Создать профиль врача
// @Description Создает профиль врача для текущего пользователя с ролью врача. Администратор может указать user_id.
// @Tags Врачи
// @Accept json
// @Produce json
// @Param input body domain.CreateDoctorDTO true "Данные врача"
// @Success 201 {object} map[string]interface{} "ID созданного профиля"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors [post]
func (h *Handler) createDoctor(c *gin.Context) {
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

	var req domain.CreateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	targetUserID := userID
	if req.UserID != 0 && req.UserID != userID {
		if userRole != domain.UserRoleAdmin {
			forbiddenResponse(c)
			return
		}
		targetUserID = req.UserID
	}

	id, err := h.services.Doctor.Create(c.Request.Context(), targetUserID, req)
	if err != nil {
		h.logger.Error("ошибка при создании профиля врача", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Получить врача по ID
// @Description Возвращает профиль врача по указанному ID
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("ошибка при получении врача", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	if doctor == nil {
		notFoundResponse(c, "врач не найден")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Профиль текущего врача
// @Description Возвращает профиль врача текущего пользователя
// @Tags Врачи
// @Accept json
// @Produce json
// @Success 200 {object} domain.Doctor "Профиль врача"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль не найден"
// @Security ApiKeyAuth
// @Router /doctors/me [get]
func (h *Handler) getMyDoctorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении профиля врача", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	if doctor == nil {
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Обновить профиль врача
// @Description Применяет изменения профиля и недельного шаблона приема. Запрос без изменений отклоняется.
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorDTO true "Изменения профиля и расписания"
// @Success 204 {object} nil "Профиль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или пустая дельта"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

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

	if userRole != domain.UserRoleAdmin {
		doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
		if err != nil {
			internalServerErrorResponse(c)
			return
		}
		if doctor == nil {
			notFoundResponse(c, "врач не найден")
			return
		}
		if doctor.UserID != userID {
			forbiddenResponse(c)
			return
		}
	}

	var req domain.UpdateDoctorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if req.IsEmpty() {
		badRequestResponse(c, "нет изменений для сохранения")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении профиля врача", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Удалить профиль врача
// @Description Удаляет профиль врача (только для администраторов)
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Профиль удален"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/{id} [delete]
func (h *Handler) deleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Doctor.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении профиля врача", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Список врачей
// @Description Возвращает список врачей с фильтрацией и пагинацией
// @Tags Врачи
// @Accept json
// @Produce json
// @Param specialization_id query int false "ID специализации"
// @Param search query string false "Поиск по имени"
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Список врачей"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.DoctorFilter{
		Limit:  limit,
		Offset: offset,
	}

	if specIDStr := c.Query("specialization_id"); specIDStr != "" {
		specID, err := strconv.ParseInt(specIDStr, 10, 64)
		if err == nil {
			filter.SpecializationID = &specID
		}
	}

	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении списка врачей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, doctors, total, page, limit)
}

// @Summary Записи на прием к врачу
// @Description Возвращает записи на прием текущего врача с фильтрацией по статусу и датам
// @Tags Врачи
// @Accept json
// @Produce json
// @Param status query string false "Статус записи"
// @Param date_from query string false "Начальная дата (YYYY-MM-DD)"
// @Param date_to query string false "Конечная дата (YYYY-MM-DD)"
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Записи на прием"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Профиль врача не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/doctor-actions/appointments [get]
func (h *Handler) getDoctorAppointments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil || doctor == nil {
		notFoundResponse(c, "профиль врача не найден")
		return
	}

	filter := parseAppointmentFilter(c)
	filter.DoctorID = &doctor.ID

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении записей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении записей")
		return
	}

	page := filter.Offset/filter.Limit + 1

	paginatedSuccessResponse(c, appointments, total, page, filter.Limit)
}

// @Summary Загрузить фото врача
// @Description Загружает фото профиля врача
// @Tags Врачи
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID врача"
// @Param photo formData file true "Файл фото"
// @Success 204 {object} nil "Фото загружено"
// @Failure 400 {object} errorResponseBody "Неверный запрос"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [post]
func (h *Handler) uploadDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if !h.canManageDoctor(c, id) {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл фото не найден в запросе")
		return
	}

	if fileHeader.Size > maxPhotoSize {
		badRequestResponse(c, "файл слишком большой, максимум 5 МБ")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	if err := h.services.Doctor.UploadProfilePhoto(c.Request.Context(), id, data, fileHeader.Filename); err != nil {
		h.logger.Error("ошибка при загрузке фото", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Удалить фото врача
// @Description Удаляет фото профиля врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 {object} nil "Фото удалено"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /doctors/{id}/photo [delete]
func (h *Handler) deleteDoctorPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if !h.canManageDoctor(c, id) {
		return
	}

	if err := h.services.Doctor.DeleteProfilePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении фото", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// canManageDoctor проверяет, что текущий пользователь владеет профилем врача
// или является администратором. Ответ клиенту при отказе уже записан.
func (h *Handler) canManageDoctor(c *gin.Context, doctorID int64) bool {
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

	if userRole == domain.UserRoleAdmin {
		return true
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		internalServerErrorResponse(c)
		return false
	}
	if doctor == nil {
		notFoundResponse(c, "врач не найден")
		return false
	}
	if doctor.UserID != userID {
		forbiddenResponse(c)
		return false
	}

	return true
}
