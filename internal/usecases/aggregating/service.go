package aggregating

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/vikareta-analytics-api/pkg/metrics"
)

const (
	kindOverview = "overview"
	kindCampaign = "campaign"
	kindRollup   = "rollup"
	kindRaw      = "raw"
)

// Service implementa Analyzer sobre os repositórios de campanhas e métricas diárias
type Service struct {
	campaignRepository    repository.CampaignRepository
	dailyMetricRepository repository.DailyMetricRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	dailyMetricRepo repository.DailyMetricRepository,
) Analyzer {
	return &Service{
		campaignRepository:    campaignRepo,
		dailyMetricRepository: dailyMetricRepo,
	}
}

func (s *Service) GetOverview(filters *domain.AnalyticsFilters) (*domain.AnalyticsOverview, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	campaignIDs, err := s.resolveCampaignIDs(filters.CampaignIDs)
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchEntries(campaignIDs, filters)
	if err != nil {
		return nil, err
	}

	records := toRecords(entries)
	metrics.ObserveAggregation(kindOverview, len(records))

	logrus.WithFields(logrus.Fields{
		"campaigns":  len(campaignIDs),
		"records":    len(records),
		"start_date": filters.StartDate.Format(time.DateOnly),
		"end_date":   filters.EndDate.Format(time.DateOnly),
	}).Debug("analytics: overview agregado")

	return &domain.AnalyticsOverview{
		Metrics:     Aggregate(records),
		Daily:       dailySeries(entries),
		RecordCount: len(records),
		CampaignIDs: campaignIDs,
		StartDate:   filters.StartDate.Format(time.DateOnly),
		EndDate:     filters.EndDate.Format(time.DateOnly),
	}, nil
}

func (s *Service) GetCampaignMetrics(campaignID string, filters *domain.AnalyticsFilters) (*domain.CampaignMetricsResponse, error) {
	if campaignID == "" {
		return nil, NewAnalyticsError(ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID da campanha")
	}

	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	campaign, err := s.findCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	entries, err := s.dailyMetricRepository.GetByDateRange(campaign.ID, *filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Error("analytics: erro ao buscar métricas diárias da campanha")
		return nil, NewAnalyticsErrorWithCampaign(ErrFetchMetrics, apiErrors.ErrDatabaseOperation, campaign.ID, "Falha ao consultar métricas diárias")
	}

	records := toRecords(entries)
	metrics.ObserveAggregation(kindCampaign, len(records))

	return &domain.CampaignMetricsResponse{
		Campaign:    campaign,
		Metrics:     Aggregate(records),
		Daily:       dailySeries(entries),
		RecordCount: len(records),
		StartDate:   filters.StartDate.Format(time.DateOnly),
		EndDate:     filters.EndDate.Format(time.DateOnly),
	}, nil
}

func (s *Service) GetCampaignsRollup(filters *domain.AnalyticsFilters) (*domain.CampaignRollupResponse, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	var (
		campaigns []*domain.Campaign
		err       error
	)
	if len(filters.CampaignIDs) > 0 {
		campaigns, err = s.campaignRepository.ListByIDs(filters.CampaignIDs)
	} else {
		campaigns, err = s.campaignRepository.List(nil)
	}
	if err != nil {
		logrus.WithError(err).Error("analytics: erro ao listar campanhas para o rollup")
		return nil, NewAnalyticsError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas")
	}

	campaignIDs := make([]string, 0, len(campaigns))
	for _, campaign := range campaigns {
		campaignIDs = append(campaignIDs, campaign.ID)
	}

	entries, err := s.fetchEntries(campaignIDs, filters)
	if err != nil {
		return nil, err
	}

	byCampaign := make(map[string][]domain.DailyMetricRecord, len(campaigns))
	for _, entry := range entries {
		byCampaign[entry.CampaignID] = append(byCampaign[entry.CampaignID], entry.Record())
	}

	groups := make([]domain.CampaignAnalytics, 0, len(campaigns))
	summaries := make([]domain.CampaignMetricsSummary, 0, len(campaigns))
	for _, campaign := range campaigns {
		analytics := byCampaign[campaign.ID]
		groups = append(groups, domain.CampaignAnalytics{Campaign: campaign, Analytics: analytics})
		summaries = append(summaries, domain.CampaignMetricsSummary{
			CampaignID:   campaign.ID,
			CampaignName: campaign.Name,
			Status:       campaign.Status,
			Metrics:      Aggregate(analytics),
			RecordCount:  len(analytics),
		})
	}

	metrics.ObserveAggregation(kindRollup, len(entries))

	return &domain.CampaignRollupResponse{
		Campaigns:   summaries,
		Combined:    AggregateCampaigns(groups),
		RecordCount: len(entries),
		StartDate:   filters.StartDate.Format(time.DateOnly),
		EndDate:     filters.EndDate.Format(time.DateOnly),
	}, nil
}

func (s *Service) AggregateRecords(records []domain.DailyMetricRecord) *domain.AggregateResponse {
	metrics.ObserveAggregation(kindRaw, len(records))

	return &domain.AggregateResponse{
		Metrics:     Aggregate(records),
		RecordCount: len(records),
	}
}

func (s *Service) IngestDailyMetrics(campaignID string, records []domain.DailyMetricRecord) (int, error) {
	if campaignID == "" {
		return 0, NewAnalyticsError(ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID da campanha")
	}

	if len(records) == 0 {
		return 0, NewAnalyticsErrorWithCampaign(ErrNoRecords, apiErrors.ErrMissingRequiredData, campaignID, "Nenhum registro enviado")
	}

	// A ingestão é tudo ou nada: qualquer registro inválido recusa o lote
	entries, verr := BuildEntries(campaignID, records)
	if verr != nil {
		return 0, &AnalyticsError{Err: verr, Code: apiErrors.ErrInvalidRecords, CampaignID: campaignID}
	}

	campaign, err := s.findCampaign(campaignID)
	if err != nil {
		return 0, err
	}

	// O ID recebido pode ser o do backend
	for _, entry := range entries {
		entry.CampaignID = campaign.ID
	}

	if err := s.dailyMetricRepository.SaveBatch(entries); err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Error("analytics: erro ao salvar métricas diárias")
		return 0, NewAnalyticsErrorWithCampaign(ErrSaveMetrics, apiErrors.ErrDatabaseOperation, campaign.ID, "Falha ao salvar métricas diárias")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"records":     len(entries),
	}).Info("analytics: métricas diárias ingeridas")

	return len(entries), nil
}

// findCampaign aceita tanto o ID interno quanto o ID do backend
func (s *Service) findCampaign(campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err == nil && campaign == nil {
		campaign, err = s.campaignRepository.GetByExternalID(campaignID)
	}
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Error("analytics: erro ao buscar campanha")
		return nil, NewAnalyticsErrorWithCampaign(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao buscar campanha")
	}

	if campaign == nil {
		return nil, NewAnalyticsErrorWithCampaign(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
	}

	return campaign, nil
}

// resolveCampaignIDs devolve os IDs internos; os IDs pedidos podem ser internos ou do backend
func (s *Service) resolveCampaignIDs(requested []string) ([]string, error) {
	var (
		campaigns []*domain.Campaign
		err       error
	)
	if len(requested) > 0 {
		campaigns, err = s.campaignRepository.ListByIDs(uniqueIDs(requested))
	} else {
		campaigns, err = s.campaignRepository.List(nil)
	}
	if err != nil {
		logrus.WithError(err).Error("analytics: erro ao listar campanhas")
		return nil, NewAnalyticsError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas")
	}

	ids := make([]string, 0, len(campaigns))
	for _, campaign := range campaigns {
		ids = append(ids, campaign.ID)
	}
	return ids, nil
}

func (s *Service) fetchEntries(campaignIDs []string, filters *domain.AnalyticsFilters) ([]*domain.DailyMetricEntry, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}

	entries, err := s.dailyMetricRepository.GetByCampaignsAndDateRange(campaignIDs, *filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).WithField("campaigns", len(campaignIDs)).Error("analytics: erro ao buscar métricas diárias")
		return nil, NewAnalyticsError(ErrFetchMetrics, apiErrors.ErrDatabaseOperation, "Falha ao consultar métricas diárias")
	}
	return entries, nil
}

func validateFilters(filters *domain.AnalyticsFilters) error {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil ||
		filters.StartDate.IsZero() || filters.EndDate.IsZero() {
		return NewAnalyticsError(ErrDateRangeRequired, apiErrors.ErrInvalidDateRange, "Informe start_date e end_date")
	}

	if filters.StartDate.After(*filters.EndDate) {
		return NewAnalyticsError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, "")
	}

	return nil
}

func toRecords(entries []*domain.DailyMetricEntry) []domain.DailyMetricRecord {
	records := make([]domain.DailyMetricRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Record())
	}
	return records
}

// dailySeries agrupa as entradas por data e agrega cada dia separadamente
func dailySeries(entries []*domain.DailyMetricEntry) []domain.DailyMetricPoint {
	byDate := make(map[string][]domain.DailyMetricRecord)
	for _, entry := range entries {
		record := entry.Record()
		byDate[record.Date] = append(byDate[record.Date], record)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]domain.DailyMetricPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, domain.DailyMetricPoint{
			Date:        date,
			Metrics:     Aggregate(byDate[date]),
			RecordCount: len(byDate[date]),
		})
	}
	return points
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
