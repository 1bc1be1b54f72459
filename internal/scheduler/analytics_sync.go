package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository"
	"github.com/vfg2006/vikareta-analytics-api/internal/config"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/vikareta-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/vikareta-analytics-api/pkg/metrics"
	"github.com/vfg2006/vikareta-analytics-api/pkg/utils"
)

const (
	syncResultSuccess = "success"
	syncResultPartial = "partial"
	syncResultError   = "error"
)

// AnalyticsSyncConfig representa a configuração do agendador de analytics
type AnalyticsSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RetentionDays       int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// AnalyticsSyncService sincroniza as séries diárias das campanhas do backend para o banco local
type AnalyticsSyncService struct {
	scheduler       *gocron.Scheduler
	config          AnalyticsSyncConfig
	campaignService campaigning.CampaignService
	integrator      vikareta.Integrator
	dailyMetricRepo repository.DailyMetricRepository

	now   func() time.Time
	sleep func(time.Duration)

	syncRunning bool
	syncMutex   sync.Mutex
	lastRun     syncRun
}

type syncRun struct {
	ID                 string
	StartedAt          time.Time
	CompletedAt        time.Time
	CampaignsProcessed int
	CampaignsFailed    int
	RecordsSaved       int
	RecordsPurged      int64
	Result             string
}

func NewAnalyticsSyncService(
	campaignService campaigning.CampaignService,
	integrator vikareta.Integrator,
	dailyMetricRepo repository.DailyMetricRepository,
	appConfig *config.Config,
) *AnalyticsSyncService {
	syncConfig := AnalyticsSyncConfig{
		CronSchedule:        appConfig.AnalyticsSync.CronSchedule,
		LookbackDays:        appConfig.AnalyticsSync.LookbackDays,
		RetentionDays:       appConfig.AnalyticsSync.RetentionDays,
		RequestDelaySeconds: appConfig.AnalyticsSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.AnalyticsSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.AnalyticsSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"retention_days":        syncConfig.RetentionDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("sync: configuração do agendador de analytics carregada")

	return &AnalyticsSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          syncConfig,
		campaignService: campaignService,
		integrator:      integrator,
		dailyMetricRepo: dailyMetricRepo,
		now:             time.Now,
		sleep:           time.Sleep,
	}
}

// Start agenda a sincronização e para o agendador quando o contexto for cancelado
func (s *AnalyticsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("sync: sincronização de analytics desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("sync: iniciando agendador de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAnalytics()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de analytics: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("sync: parando agendador de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma sincronização em background; retorna false se já houver uma em andamento
func (s *AnalyticsSyncService) TriggerManualSync() bool {
	if s.IsRunning() {
		logrus.Info("sync: sincronização já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("sync: iniciando sincronização manual de analytics")
	go s.syncAllAnalytics()
	return true
}

func (s *AnalyticsSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador e da última execução
func (s *AnalyticsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"retention_days":         s.config.RetentionDays,
		"last_run_id":            s.lastRun.ID,
		"last_run_result":        s.lastRun.Result,
		"last_sync_started_at":   s.lastRun.StartedAt,
		"last_sync_completed_at": s.lastRun.CompletedAt,
		"campaigns_processed":    s.lastRun.CampaignsProcessed,
		"campaigns_failed":       s.lastRun.CampaignsFailed,
		"records_saved":          s.lastRun.RecordsSaved,
		"records_purged":         s.lastRun.RecordsPurged,
	}
}

func (s *AnalyticsSyncService) syncAllAnalytics() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("sync: sincronização de analytics já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	run := syncRun{ID: utils.GenerateRunID(), StartedAt: s.now()}
	s.lastRun = run
	s.syncMutex.Unlock()

	defer func() {
		run.CompletedAt = s.now()
		metrics.SyncRuns.WithLabelValues(run.Result).Inc()

		s.syncMutex.Lock()
		s.lastRun = run
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	log := logrus.WithField("run_id", run.ID)
	log.Info("sync: iniciando sincronização de analytics")

	campaigns, _, err := s.campaignService.SyncCampaigns()
	if err != nil {
		log.WithError(err).Error("sync: erro ao sincronizar campanhas")
		run.Result = syncResultError
		return
	}

	if len(campaigns) == 0 {
		log.Info("sync: nenhuma campanha ativa encontrada")
		run.Result = syncResultSuccess
		return
	}

	start, end := utils.LookbackRange(s.now(), s.config.LookbackDays)
	filters := &domain.AnalyticsFilters{StartDate: &start, EndDate: &end}

	log.WithFields(logrus.Fields{
		"campaigns":  len(campaigns),
		"start_date": start.Format(time.DateOnly),
		"end_date":   end.Format(time.DateOnly),
	}).Info("sync: período para sincronização de analytics")

	processed, failed, saved := s.processCampaigns(log, campaigns, filters)
	run.CampaignsProcessed = processed
	run.CampaignsFailed = failed
	run.RecordsSaved = saved

	run.RecordsPurged = s.purgeOldMetrics(log)

	switch {
	case failed == 0:
		run.Result = syncResultSuccess
	case processed > 0:
		run.Result = syncResultPartial
	default:
		run.Result = syncResultError
	}

	log.WithFields(logrus.Fields{
		"duration":  s.now().Sub(run.StartedAt).String(),
		"processed": processed,
		"failed":    failed,
		"records":   saved,
		"result":    run.Result,
	}).Info("sync: sincronização de analytics concluída")
}

// processCampaigns busca e grava a série de cada campanha limitando a concorrência
func (s *AnalyticsSyncService) processCampaigns(log *logrus.Entry, campaigns []*domain.Campaign, filters *domain.AnalyticsFilters) (int, int, int) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg        sync.WaitGroup
		processed atomic.Int64
		failed    atomic.Int64
		saved     atomic.Int64
	)

	for _, campaign := range campaigns {
		if campaign.ExternalID == "" || campaign.ID == "" {
			log.WithField("campaign_id", campaign.ID).Warn("sync: campanha sem identificadores, pulando")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Campaign) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			count, err := s.processCampaign(c, filters)
			if err != nil {
				failed.Add(1)
				log.WithError(err).WithFields(logrus.Fields{
					"campaign_id": c.ID,
					"external_id": c.ExternalID,
				}).Error("sync: erro ao sincronizar analytics da campanha")
			} else {
				processed.Add(1)
				saved.Add(int64(count))
			}

			if s.config.RequestDelaySeconds > 0 {
				s.sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
			}
		}(campaign)
	}

	wg.Wait()

	return int(processed.Load()), int(failed.Load()), int(saved.Load())
}

func (s *AnalyticsSyncService) processCampaign(campaign *domain.Campaign, filters *domain.AnalyticsFilters) (int, error) {
	records, err := s.integrator.FetchCampaignAnalytics(campaign.ExternalID, filters)
	if err != nil {
		return 0, err
	}

	if len(records) == 0 {
		return 0, nil
	}

	// Linhas inválidas violariam os CHECKs da tabela e abortariam o lote inteiro
	entries, verr := aggregating.BuildEntries(campaign.ID, records)
	if verr != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"external_id": campaign.ExternalID,
			"discarded":   verr.InvalidRecords(),
			"kept":        len(entries),
		}).WithError(verr).Warn("sync: registros inválidos do backend descartados")
	}

	if len(entries) == 0 {
		return 0, nil
	}

	if err := s.dailyMetricRepo.SaveBatch(entries); err != nil {
		return 0, fmt.Errorf("erro ao salvar métricas diárias: %w", err)
	}

	metrics.SyncedRecords.Add(float64(len(entries)))

	return len(entries), nil
}

func (s *AnalyticsSyncService) purgeOldMetrics(log *logrus.Entry) int64 {
	if s.config.RetentionDays <= 0 {
		return 0
	}

	purged, err := s.dailyMetricRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		log.WithError(err).Warn("sync: erro ao remover métricas antigas")
		return 0
	}

	if purged > 0 {
		log.WithField("records", purged).Info("sync: métricas antigas removidas")
	}
	return purged
}
