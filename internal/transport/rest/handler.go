package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hms/config"
	"hms/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		weekdays := api.Group("/weekdays")
		{
			weekdays.GET("/", h.getWeekdays)
		}

		slots := api.Group("/slots")
		{
			slots.GET("/", h.getSlotCatalog)
			slots.GET("/day", h.getDaySlots)

			admin := slots.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSlot)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/me", h.authMiddleware(), h.getMyDoctorProfile)

			auth := doctors.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createDoctor)
				auth.PUT("/:id", h.updateDoctor)
				auth.DELETE("/:id", h.adminMiddleware(), h.deleteDoctor)

				auth.POST("/:id/photo", h.uploadDoctorPhoto)
				auth.DELETE("/:id/photo", h.deleteDoctorPhoto)

				doctorRoutes := auth.Group("/doctor-actions")
				doctorRoutes.Use(h.doctorMiddleware())
				{
					doctorRoutes.GET("/appointments", h.getDoctorAppointments)
				}
			}
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("/bookable", h.getBookableSlots)

			auth := appointments.Group("/")
			auth.Use(h.authMiddleware())
			{
				auth.POST("/", h.createAppointment)
				auth.GET("/:id", h.getAppointmentByID)
				auth.DELETE("/:id", h.cancelAppointment)
				auth.GET("/", h.getAppointments)
			}
		}

		specializations := api.Group("/specializations")
		{
			specializations.GET("/", h.getSpecializations)
			specializations.GET("/:id", h.getSpecializationByID)

			admin := specializations.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSpecialization)
				admin.PUT("/:id", h.updateSpecialization)
				admin.DELETE("/:id", h.deleteSpecialization)
			}
		}
	}
}
