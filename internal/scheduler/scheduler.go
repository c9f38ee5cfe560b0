package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/config"
	"github.com/Josh-codes/AgriDroneX/internal/service/farms"
	"github.com/Josh-codes/AgriDroneX/internal/service/weather"
)

// Scheduler refreshes every farm's forecast buffer in the background so
// advisories stay current between dashboard visits.
type Scheduler struct {
	cron       *cron.Cron
	farmSvc    farms.Service
	weatherSvc weather.Service
	cfg        config.ForecastConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ForecastConfig, farmSvc farms.Service, weatherSvc weather.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:       cron.New(),
		farmSvc:    farmSvc,
		weatherSvc: weatherSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshAllFarms)
	if err != nil {
		s.logger.Error("failed to schedule forecast refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshAllFarms() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	allFarms, err := s.farmSvc.ListFarms(ctx)
	if err != nil {
		s.logger.Error("failed listing farms for refresh", zap.Error(err))
		return
	}

	s.logger.Info("refreshing farm forecasts", zap.Int("farms", len(allFarms)))

	for _, farm := range allFarms {
		if err := s.weatherSvc.Refresh(ctx, farm); err != nil {
			s.logger.Error("forecast refresh failed",
				zap.String("farm_id", farm.ID.Hex()),
				zap.String("name", farm.Name),
				zap.Error(err))
		}
	}
}
