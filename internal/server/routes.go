// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package server

import (
	"codeberg.org/avollmer/taskmate/internal/handlers"
	"github.com/labstack/echo/v4"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers) {
	// Static files
	e.Static("/static", "static")

	e.GET("/health", h.Health)
	e.GET("/", h.Home)

	// Account
	e.GET("/signup", h.SignupPage)
	e.POST("/signup", h.Signup)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	// Password recovery
	e.GET("/forgot-password", h.ForgotPassword)
	e.POST("/verify-email", h.VerifyEmail)
	e.POST("/verify-otp", h.VerifyOTP)
	e.POST("/reset-password", h.ResetPassword)

	// Contact
	e.GET("/contact", h.ContactPage)
	e.POST("/contact", h.SubmitContact)

	// Authenticated area
	auth := e.Group("", requireAuth())
	auth.GET("/dashboard", h.Dashboard)
	auth.GET("/tasks", h.TaskList)
	auth.GET("/add-task", h.AddTaskPage)
	auth.POST("/add-task", h.AddTask)
	auth.GET("/task/edit/:id", h.EditTaskPage)
	auth.POST("/task/edit/:id", h.EditTask)
	auth.GET("/completed-tasks", h.CompletedTasks)
	auth.GET("/projects", h.Projects)
	auth.POST("/tasks/toggle-completion/:id", h.ToggleCompletion)
	auth.POST("/tasks/restore-task/:id", h.RestoreTask)
	auth.POST("/tasks/restore-task-ajax/:id", h.RestoreTaskAJAX)
	auth.POST("/tasks/delete-task/:id", h.DeleteTask)
	auth.GET("/profile", h.ProfilePage)
	auth.POST("/profile", h.UpdateProfile)
	auth.GET("/password-change", h.PasswordChangePage)
	auth.POST("/password-change", h.PasswordChange)
}
