package aggregating

import (
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

// Aggregate soma os registros em uma única passada e calcula as métricas derivadas.
// Uma lista vazia resulta em totais e métricas zerados.
func Aggregate(records []domain.DailyMetricRecord) domain.AggregateResult {
	totals := domain.MetricTotals{}

	for _, record := range records {
		totals.Impressions += record.Impressions
		totals.Clicks += record.Clicks
		totals.Conversions += record.Conversions
		totals.Spend += record.Spend
		totals.Revenue += record.Revenue
	}

	return FromTotals(totals)
}

// AggregateCampaigns achata campaigns[].analytics[] e agrega como uma lista única
func AggregateCampaigns(campaigns []domain.CampaignAnalytics) domain.AggregateResult {
	return Aggregate(Flatten(campaigns))
}

// Flatten concatena as séries diárias de todas as campanhas
func Flatten(campaigns []domain.CampaignAnalytics) []domain.DailyMetricRecord {
	size := 0
	for _, campaign := range campaigns {
		size += len(campaign.Analytics)
	}

	records := make([]domain.DailyMetricRecord, 0, size)
	for _, campaign := range campaigns {
		records = append(records, campaign.Analytics...)
	}

	return records
}

// FromTotals calcula CTR, CPC, CPM, ROAS e taxa de conversão a partir dos totais
func FromTotals(totals domain.MetricTotals) domain.AggregateResult {
	impressions := float64(totals.Impressions)
	clicks := float64(totals.Clicks)
	conversions := float64(totals.Conversions)

	return domain.AggregateResult{
		Totals:         totals,
		CTR:            safeDivide(clicks, impressions) * 100,
		CPC:            safeDivide(totals.Spend, clicks),
		CPM:            safeDivide(totals.Spend, impressions) * 1000,
		ROAS:           safeDivide(totals.Revenue, totals.Spend),
		ConversionRate: safeDivide(conversions, clicks) * 100,
	}
}

// AddTotals soma dois totais elemento a elemento
func AddTotals(a, b domain.MetricTotals) domain.MetricTotals {
	return domain.MetricTotals{
		Impressions: a.Impressions + b.Impressions,
		Clicks:      a.Clicks + b.Clicks,
		Conversions: a.Conversions + b.Conversions,
		Spend:       a.Spend + b.Spend,
		Revenue:     a.Revenue + b.Revenue,
	}
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
