package domain

import "time"

type AnalyticsFilters struct {
	StartDate   *time.Time
	EndDate     *time.Time
	CampaignIDs []string
}

// DailyMetricPoint é um ponto da série diária com suas métricas derivadas
type DailyMetricPoint struct {
	Date        string          `json:"date"`
	Metrics     AggregateResult `json:"metrics"`
	RecordCount int             `json:"record_count"`
}

type AnalyticsOverview struct {
	Metrics     AggregateResult    `json:"metrics"`
	Daily       []DailyMetricPoint `json:"daily"`
	RecordCount int                `json:"record_count"`
	CampaignIDs []string           `json:"campaign_ids"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
}

type CampaignMetricsResponse struct {
	Campaign    *Campaign          `json:"campaign"`
	Metrics     AggregateResult    `json:"metrics"`
	Daily       []DailyMetricPoint `json:"daily"`
	RecordCount int                `json:"record_count"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
}

type CampaignMetricsSummary struct {
	CampaignID   string          `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	Status       CampaignStatus  `json:"status"`
	Metrics      AggregateResult `json:"metrics"`
	RecordCount  int             `json:"record_count"`
}

type CampaignRollupResponse struct {
	Campaigns   []CampaignMetricsSummary `json:"campaigns"`
	Combined    AggregateResult          `json:"combined"`
	RecordCount int                      `json:"record_count"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
}

type AggregateResponse struct {
	Metrics     AggregateResult `json:"metrics"`
	RecordCount int             `json:"record_count"`
}
