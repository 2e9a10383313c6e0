package main

import (
	"fmt"
	"log"
	"net/http"

	"edujournal/internal/config"
	"edujournal/internal/handlers"
	"edujournal/internal/models"
	"edujournal/internal/repository"
	"edujournal/internal/services"
	"edujournal/pkg/database"

	"github.com/gin-gonic/gin"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем администратора по умолчанию
	if err := db.CreateDefaultAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	studentRepo := repository.NewStudentRepository(db.DB)
	teacherRepo := repository.NewTeacherRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	attendanceRepo := repository.NewAttendanceRepository(db.DB)
	auditRepo := repository.NewAuditLogRepository(db.DB)
	gradeRepo := repository.NewGradeRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	assignmentRepo := repository.NewAssignmentRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(userRepo, teacherRepo, studentRepo, cfg.JWTSecret, cfg.JWTExpiration)
	schoolService := services.NewSchoolService(studentRepo, teacherRepo, courseRepo)
	attendanceService := services.NewAttendanceService(db.DB, attendanceRepo, auditRepo, courseRepo, studentRepo)
	statsService := services.NewStatsService(attendanceRepo, courseRepo, studentRepo)
	gradeService := services.NewGradeService(gradeRepo, courseRepo, studentRepo)
	exportService := services.NewExportService(attendanceRepo)
	dashboardService := services.NewDashboardService(db.DB)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, courseRepo)
	eventService := services.NewEventService(eventRepo, courseRepo)

	// Создаем обработчики
	authHandler := handlers.NewAuthHandler(authService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	reportHandler := handlers.NewReportHandler(statsService, exportService, dashboardService, auditRepo)
	gradeHandler := handlers.NewGradeHandler(gradeService)
	calendarHandler := handlers.NewCalendarHandler(assignmentService, eventService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := gin.Default()

	// Middleware
	router.Use(handlers.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API маршруты
	api := router.Group("/api")

	// Публичные маршруты
	public := api.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/logout", authHandler.Logout)
	}

	// Маршруты, требующие авторизации
	authorized := api.Group("")
	authorized.Use(handlers.AuthMiddleware(authService))
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.GET("/profile", authHandler.Me)
		authorized.GET("/dashboard", reportHandler.Dashboard)

		// Справочники (чтение доступно всем ролям)
		authorized.GET("/students", schoolHandler.ListStudents)
		authorized.GET("/students/:id", schoolHandler.GetStudent)
		authorized.GET("/teachers", schoolHandler.ListTeachers)
		authorized.GET("/teachers/:id", schoolHandler.GetTeacher)
		authorized.GET("/courses", schoolHandler.ListCourses)
		authorized.GET("/courses/:id", schoolHandler.GetCourse)

		// Посещаемость
		staff := authorized.Group("")
		staff.Use(handlers.RequireRoles(models.RoleAdmin, models.RoleTeacher))
		{
			staff.POST("/attendance", attendanceHandler.Create)
			staff.PUT("/attendance", attendanceHandler.Mark)
			staff.POST("/attendance/bulk", attendanceHandler.MarkBulk)
			staff.GET("/attendance", attendanceHandler.List)

			// Отчеты и выгрузки
			staff.GET("/courses/:id/stats", reportHandler.CourseStats)
			staff.GET("/attendance/export", reportHandler.Export)

			// Оценки
			staff.POST("/grades", gradeHandler.Create)
			staff.PUT("/grades/:id", gradeHandler.Update)
			staff.GET("/courses/:id/grades", gradeHandler.ListByCourse)

			// Задания и события
			staff.POST("/assignments", calendarHandler.CreateAssignment)
			staff.DELETE("/assignments/:id", calendarHandler.DeleteAssignment)
			staff.POST("/events", calendarHandler.CreateEvent)
			staff.DELETE("/events/:id", calendarHandler.DeleteEvent)
		}

		// Сводки ученика доступны и самому ученику
		authorized.GET("/students/:id/report", reportHandler.StudentReport)
		authorized.GET("/students/:id/percentage", reportHandler.StudentPercentage)
		authorized.GET("/students/:id/grades", gradeHandler.ListByStudent)
		authorized.GET("/grades/my", gradeHandler.MyGrades)
		authorized.GET("/courses/:id/assignments", calendarHandler.ListAssignments)
		authorized.GET("/events", calendarHandler.ListEvents)

		// Уведомления текущего пользователя
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		// Администрирование
		admin := authorized.Group("/admin")
		admin.Use(handlers.AdminOnlyMiddleware())
		{
			admin.POST("/students", schoolHandler.CreateStudent)
			admin.PUT("/students/:id", schoolHandler.UpdateStudent)
			admin.DELETE("/students/:id", schoolHandler.DeleteStudent)

			admin.POST("/teachers", schoolHandler.CreateTeacher)
			admin.PUT("/teachers/:id", schoolHandler.UpdateTeacher)
			admin.DELETE("/teachers/:id", schoolHandler.DeleteTeacher)

			admin.POST("/courses", schoolHandler.CreateCourse)
			admin.PUT("/courses/:id", schoolHandler.UpdateCourse)
			admin.DELETE("/courses/:id", schoolHandler.DeleteCourse)
			admin.POST("/courses/:id/students/:student_id", schoolHandler.Enroll)
			admin.DELETE("/courses/:id/students/:student_id", schoolHandler.Unenroll)

			admin.DELETE("/attendance/:id", attendanceHandler.Delete)
			admin.GET("/attendance/:id/history", reportHandler.AttendanceHistory)
			admin.GET("/audit-logs", reportHandler.AuditLogs)
			admin.POST("/notifications/broadcast", notificationHandler.Broadcast)
		}
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
