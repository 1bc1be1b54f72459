package domain

import "time"

// DailyMetricRecord representa um dia (ou um dia de campanha) de performance
type DailyMetricRecord struct {
	Date        string  `json:"date,omitempty"` // Formato yyyy-mm-dd
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// MetricTotals é a soma elemento a elemento de um conjunto de registros
type MetricTotals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// AggregateResult contém os totais e as métricas derivadas, sem arredondamento
type AggregateResult struct {
	Totals         MetricTotals `json:"totals"`
	CTR            float64      `json:"ctr"`             // Percentual: clicks / impressions * 100
	CPC            float64      `json:"cpc"`             // spend / clicks
	CPM            float64      `json:"cpm"`             // spend / impressions * 1000
	ROAS           float64      `json:"roas"`            // revenue / spend
	ConversionRate float64      `json:"conversion_rate"` // Percentual: conversions / clicks * 100
}

// DailyMetricEntry representa um registro diário armazenado no banco
type DailyMetricEntry struct {
	ID          int64     `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Record converte a entrada persistida no registro consumido pelo agregador
func (e *DailyMetricEntry) Record() DailyMetricRecord {
	return DailyMetricRecord{
		Date:        e.Date.Format(time.DateOnly),
		Impressions: e.Impressions,
		Clicks:      e.Clicks,
		Conversions: e.Conversions,
		Spend:       e.Spend,
		Revenue:     e.Revenue,
	}
}

// NewDailyMetricEntry cria uma entrada para persistência a partir de um registro
func NewDailyMetricEntry(campaignID string, date time.Time, record DailyMetricRecord) *DailyMetricEntry {
	return &DailyMetricEntry{
		CampaignID:  campaignID,
		Date:        date,
		Impressions: record.Impressions,
		Clicks:      record.Clicks,
		Conversions: record.Conversions,
		Spend:       record.Spend,
		Revenue:     record.Revenue,
	}
}
