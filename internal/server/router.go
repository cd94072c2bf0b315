package server

import (
	"net/http"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/handlers"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/middleware"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth         *services.AuthService
	Problems     *services.ProblemService
	Registration *services.RegistrationService
	Admin        *services.AdminService
	Events       *services.EventService
	Resources    *services.ResourceService
	Content      *services.ContentService
	Queries      *services.QueryService
}

// NewRouter builds the gin engine with sessions, actor loading and every route.
func NewRouter(svc Services, sessionStore sessions.Store, files *storage.Store, signer *storage.URLSigner, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))
	r.Use(middleware.LoadActor(svc.Auth, log))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	problemHandler := handlers.NewProblemHandler(svc.Problems)
	registrationHandler := handlers.NewRegistrationHandler(svc.Registration, svc.Problems)
	adminHandler := handlers.NewAdminHandler(svc.Admin)
	eventHandler := handlers.NewEventHandler(svc.Events)
	resourceHandler := handlers.NewResourceHandler(svc.Resources)
	contentHandler := handlers.NewContentHandler(svc.Content)
	queryHandler := handlers.NewQueryHandler(svc.Queries)
	fileHandler := handlers.NewFileHandler(files, signer, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Campuspreneurs API is running",
		})
	})

	r.GET("/files/signed/:token", fileHandler.ServeSigned)
	r.GET("/files/:bucket/:key", fileHandler.ServePublic)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		problems := api.Group("/problems")
		{
			problems.GET("", problemHandler.ListProblems)
			problems.GET("/resolve", problemHandler.ResolveProblem)
			problems.GET("/:problemId", problemHandler.GetProblem)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("/validate", registrationHandler.ValidateFields)
			registrations.POST("", middleware.RequireAuth(), registrationHandler.Submit)
			registrations.GET("/mine", middleware.RequireAuth(), registrationHandler.ListMine)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("/:id/register", middleware.RequireAuth(), eventHandler.Register)
			events.GET("/:id/registration", middleware.RequireAuth(), eventHandler.RegistrationStatus)
		}

		api.GET("/resources", resourceHandler.ListResources)
		api.GET("/content/:key", contentHandler.GetContent)
		api.POST("/queries", queryHandler.SubmitQuery)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/teams", adminHandler.ListTeams)
			admin.POST("/teams", adminHandler.CreateTeam)
			admin.DELETE("/teams", adminHandler.DeleteAllTeams)
			admin.PUT("/teams/:id", adminHandler.UpdateTeam)
			admin.DELETE("/teams/:id", adminHandler.DeleteTeam)
			admin.GET("/teams/:id/document", adminHandler.DocumentLink)
			admin.GET("/teams/:id/document/download", adminHandler.DownloadDocument)

			admin.POST("/problems", problemHandler.CreateProblem)
			admin.PUT("/problems/:id", problemHandler.UpdateProblem)
			admin.DELETE("/problems/:id", problemHandler.DeleteProblem)

			admin.GET("/events", eventHandler.ListAllEvents)
			admin.POST("/events", eventHandler.CreateEvent)
			admin.PUT("/events/:id", eventHandler.UpdateEvent)
			admin.DELETE("/events/:id", eventHandler.DeleteEvent)

			admin.POST("/resources", resourceHandler.CreateResource)
			admin.PUT("/resources/:id", resourceHandler.UpdateResource)
			admin.DELETE("/resources/:id", resourceHandler.DeleteResource)

			admin.PUT("/content/:key", contentHandler.UpsertContent)

			admin.GET("/queries", queryHandler.ListQueries)
			admin.POST("/queries/:id/resolve", queryHandler.ResolveQuery)
			admin.POST("/queries/:id/draft-reply", queryHandler.DraftReply)
			admin.DELETE("/queries/:id", queryHandler.DeleteQuery)
		}
	}

	return r
}
