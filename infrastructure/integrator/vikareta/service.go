package vikareta

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vikaretadomain "github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/domain"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/vikaretaclient"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_integrator.go -package=mocks

type Integrator interface {
	FetchActiveCampaigns() ([]*domain.Campaign, error)
	FetchCampaignAnalytics(externalID string, filters *domain.AnalyticsFilters) ([]domain.DailyMetricRecord, error)
}

type Service struct {
	client vikaretaclient.Client
}

func NewService(client vikaretaclient.Client) Integrator {
	return &Service{client: client}
}

func (s *Service) FetchActiveCampaigns() ([]*domain.Campaign, error) {
	response, err := s.client.GetCampaigns(string(domain.CampaignStatusActive))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanhas ativas no backend")
	}

	campaigns := make([]*domain.Campaign, 0, len(response))
	for _, c := range response {
		if c.ID == "" {
			logrus.WithField("name", c.Name).Warn("vikareta: campanha sem ID ignorada")
			continue
		}

		campaigns = append(campaigns, &domain.Campaign{
			ExternalID: c.ID,
			Name:       c.Name,
			Status:     normalizeStatus(c.Status),
		})
	}

	return campaigns, nil
}

// FetchCampaignAnalytics normaliza as datas para yyyy-mm-dd e soma registros do mesmo dia
func (s *Service) FetchCampaignAnalytics(externalID string, filters *domain.AnalyticsFilters) ([]domain.DailyMetricRecord, error) {
	response, err := s.client.GetCampaignAnalytics(externalID, filters)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar analytics da campanha %s", externalID)
	}

	byDate := make(map[string]int, len(response))
	records := make([]domain.DailyMetricRecord, 0, len(response))

	for _, day := range response {
		date, ok := normalizeDate(day.Date)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"campaign_id": externalID,
				"date":        day.Date,
			}).Warn("vikareta: registro com data inválida ignorado")
			continue
		}

		record := toRecord(date, day)
		if idx, exists := byDate[date]; exists {
			records[idx] = sumRecords(records[idx], record)
			continue
		}

		byDate[date] = len(records)
		records = append(records, record)
	}

	return records, nil
}

func toRecord(date string, day vikaretadomain.DailyAnalytics) domain.DailyMetricRecord {
	return domain.DailyMetricRecord{
		Date:        date,
		Impressions: int64(day.Impressions),
		Clicks:      int64(day.Clicks),
		Conversions: int64(day.Conversions),
		Spend:       float64(day.Spend),
		Revenue:     float64(day.Revenue),
	}
}

func sumRecords(a, b domain.DailyMetricRecord) domain.DailyMetricRecord {
	return domain.DailyMetricRecord{
		Date:        a.Date,
		Impressions: a.Impressions + b.Impressions,
		Clicks:      a.Clicks + b.Clicks,
		Conversions: a.Conversions + b.Conversions,
		Spend:       a.Spend + b.Spend,
		Revenue:     a.Revenue + b.Revenue,
	}
}

func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.Format(time.DateOnly), true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.DateOnly), true
	}

	return "", false
}

func normalizeStatus(status string) domain.CampaignStatus {
	switch domain.CampaignStatus(strings.ToLower(strings.TrimSpace(status))) {
	case domain.CampaignStatusPaused:
		return domain.CampaignStatusPaused
	case domain.CampaignStatusCompleted:
		return domain.CampaignStatusCompleted
	case domain.CampaignStatusDraft:
		return domain.CampaignStatusDraft
	default:
		return domain.CampaignStatusActive
	}
}
