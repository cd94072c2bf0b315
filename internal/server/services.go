package server

import (
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/config"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewServices wires repositories and services over db. The AI drafter is only
// configured when an OpenAI key is set.
func NewServices(cfg *config.Config, db *gorm.DB, files *storage.Store, signer *storage.URLSigner, log *zap.Logger) Services {
	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	regRepo := repository.NewTeamRegistrationRepository(db)

	admin := services.NewAdminService(problemRepo, regRepo, userRepo, files.TeamDocuments, signer, cfg.AdminSnapshotMaxAge, log)

	var drafter services.ReplyDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	return Services{
		Auth:         services.NewAuthService(userRepo, cfg.AllowedEmailDomain),
		Problems:     services.NewProblemService(problemRepo, admin.Invalidate),
		Registration: services.NewRegistrationService(regRepo, problemRepo, files.TeamDocuments, admin, log),
		Admin:        admin,
		Events:       services.NewEventService(repository.NewEventRepository(db), files.EventImages, log),
		Resources:    services.NewResourceService(repository.NewResourceRepository(db), files.Resources),
		Content:      services.NewContentService(repository.NewPageContentRepository(db)),
		Queries:      services.NewQueryService(repository.NewQueryRepository(db), drafter, cfg.QueryRetention, log),
	}
}
