package aggregating

import (
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_analyzer.go -package=mocks

// Analyzer expõe as agregações consumidas pelo dashboard
type Analyzer interface {
	// GetOverview agrega todos os registros diários do período (visão geral)
	GetOverview(filters *domain.AnalyticsFilters) (*domain.AnalyticsOverview, error)

	// GetCampaignMetrics agrega os registros de uma única campanha
	GetCampaignMetrics(campaignID string, filters *domain.AnalyticsFilters) (*domain.CampaignMetricsResponse, error)

	// GetCampaignsRollup agrega por campanha e combina todas as campanhas
	GetCampaignsRollup(filters *domain.AnalyticsFilters) (*domain.CampaignRollupResponse, error)

	// AggregateRecords agrega registros recebidos diretamente, sem validação
	AggregateRecords(records []domain.DailyMetricRecord) *domain.AggregateResponse

	// IngestDailyMetrics valida e persiste registros diários de uma campanha
	IngestDailyMetrics(campaignID string, records []domain.DailyMetricRecord) (int, error)
}
