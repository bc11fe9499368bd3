package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
)

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context, technicianID uint64) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	dashboardRepo  repositories.DashboardRepositoryInterface
	traitementRepo repositories.TraitementRepositoryInterface
	logger         *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	traitementRepo repositories.TraitementRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		traitementRepo: traitementRepo,
		logger:         logger,
	}
}

// GetDashboardStats gathers the four dashboard aggregates concurrently.
// The per-status map reports every known status, zero or not.
func (s *DashboardService) GetDashboardStats(ctx context.Context, technicianID uint64) (*dto.DashboardStatsDTO, error) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex

		total        int
		statusCounts []repositories.StatusCount
		myCount      int
		myDistinct   int
		firstErr     error
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.GetTotalInterventions(ctx)
		total = v
		record(err)
	}()
	go func() {
		defer wg.Done()
		v, err := s.dashboardRepo.GetCountByStatus(ctx)
		statusCounts = v
		record(err)
	}()
	go func() {
		defer wg.Done()
		v, err := s.traitementRepo.CountByTechnician(ctx, technicianID)
		myCount = v
		record(err)
	}()
	go func() {
		defer wg.Done()
		v, err := s.traitementRepo.CountDistinctInterventionsByTechnician(ctx, technicianID)
		myDistinct = v
		record(err)
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	counts := lifecycle.Summarize(nil)
	for _, sc := range statusCounts {
		counts[sc.Status] += sc.Count
	}

	return &dto.DashboardStatsDTO{
		TotalInterventions:     total,
		StatusCounts:           counts,
		MyTraitementsCount:     myCount,
		MyTreatedInterventions: myDistinct,
	}, nil
}
