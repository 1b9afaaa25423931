package integrity

import (
	"context"
	"errors"

	"pokemon-service/core/database"
	"pokemon-service/feature/cleaning"
	"pokemon-service/feature/integrity/checks"
	"pokemon-service/feature/pokemon/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by CheckReports when no report archive is configured.
var ErrStorageDisabled = errors.New("report storage is disabled")

// Service handles integrity checks.
type Service struct {
	store   *database.Store
	archive *cleaning.Archive
	logger  *zap.Logger
}

// NewService creates a new integrity service. archive may be nil.
func NewService(store *database.Store, archive *cleaning.Archive, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		archive: archive,
		logger:  logger,
	}
}

// CheckServer compares the live schema with the pokemon models.
func (s *Service) CheckServer(ctx context.Context) (*checks.ServerReport, error) {
	var report *checks.ServerReport
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		report, err = checks.CheckServerIntegrity(tx, models.All()...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CheckReports lists the archived cleaning reports, oldest first.
func (s *Service) CheckReports(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return nil, ErrStorageDisabled
	}
	return s.archive.List(ctx)
}
