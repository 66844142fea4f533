package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vetclinic/internal/domain"
	"vetclinic/internal/repository"
)

type CatalogServiceImpl struct {
	repo   repository.ServiceRepository
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (*domain.ClinicService, error) {
	dto.Type = strings.TrimSpace(dto.Type)
	if err := validateServiceFields(&dto.Type, &dto.DurationMinutes); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("failed to create service", zap.String("type", dto.Type), zap.Error(err))
		return nil, fmt.Errorf("creating service: %w", err)
	}

	s.logger.Info("service created", zap.Int64("id", id), zap.String("type", dto.Type))
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.ClinicService, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to get service", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return service, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) (*domain.ClinicService, error) {
	if dto.Type != nil {
		dto.Type = PointerTo(strings.TrimSpace(*dto.Type))
	}
	if err := validateServiceFields(dto.Type, dto.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to update service", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to delete service", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("service deleted", zap.Int64("id", id))
	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.ClinicService, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list services", zap.Error(err))
		return nil, err
	}
	return services, nil
}

// nil pointers are left unchecked, so partial updates validate only what they set.
func validateServiceFields(serviceType *string, duration *int) error {
	var fields []string
	if serviceType != nil && *serviceType == "" {
		fields = append(fields, "type must not be empty")
	}
	if duration != nil && *duration <= 0 {
		fields = append(fields, "duration_minutes must be greater than 0")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}
