package handler

import (
	"edu-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth       *AuthHandler
	Quiz       *QuizHandler
	Student    *StudentHandler
	Curriculum *CurriculumHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API under /api. Everything except auth and
// health requires an access token.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator) {
	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/register", h.Auth.Register)
	auth.Post("/refresh", h.Auth.RefreshToken)

	authed := middleware.Protected(tokens)
	api.Get("/dashboard", authed, h.Dashboard.GetDashboard)

	withID := middleware.ValidateIDParams("id")

	quizzes := api.Group("/quizzes", authed)
	quizzes.Get("/", h.Quiz.ListQuizzes)
	quizzes.Post("/generate", h.Quiz.GenerateQuiz)
	quizzes.Post("/repair", h.Quiz.RepairQuiz)
	quizzes.Get("/:id", withID, h.Quiz.GetQuiz)
	quizzes.Put("/:id", withID, h.Quiz.UpdateQuiz)
	quizzes.Delete("/:id", withID, h.Quiz.DeleteQuiz)
	quizzes.Put("/:id/assignments", withID, h.Quiz.AssignStudents)
	quizzes.Post("/:id/submissions", withID, h.Quiz.SubmitAnswers)

	students := api.Group("/students", authed)
	students.Get("/", h.Student.ListStudents)
	students.Post("/", h.Student.CreateStudent)
	students.Get("/:id", withID, h.Student.GetStudent)
	students.Put("/:id", withID, h.Student.UpdateStudent)
	students.Delete("/:id", withID, h.Student.DeleteStudent)
	students.Post("/:id/results", withID, h.Student.AddQuizResult)
	students.Get("/:id/stats", withID, h.Student.GetStats)

	modules := api.Group("/modules", authed)
	modules.Get("/", h.Curriculum.ListModules)
	modules.Post("/", h.Curriculum.CreateModule)
	modules.Post("/generate", h.Curriculum.GenerateModule)
	modules.Get("/:id", withID, h.Curriculum.GetModule)
	modules.Delete("/:id", withID, h.Curriculum.DeleteModule)
	modules.Post("/:id/lessons", withID, h.Curriculum.AddLesson)
	modules.Delete("/:id/lessons/:lessonId", middleware.ValidateIDParams("id", "lessonId"), h.Curriculum.DeleteLesson)
}
