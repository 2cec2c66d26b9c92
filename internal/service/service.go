package service

import (
	"time"

	"github.com/lenddesk/inventory-service/internal/events"
	"github.com/lenddesk/inventory-service/internal/repository"
	"github.com/lenddesk/inventory-service/pkg/auth"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	events  *events.Publisher
	authCfg auth.Config

	now func() time.Time
}

func NewService(repo repository.Repository, publisher *events.Publisher, authCfg auth.Config, log *zap.Logger) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		events:  publisher,
		authCfg: authCfg,
		now:     time.Now,
	}
}
