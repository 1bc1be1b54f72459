package vikaretaclient

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
	vikaretadomain "github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

// GetCampaignAnalytics busca a série diária de uma campanha no período informado
func (c *VikaretaClient) GetCampaignAnalytics(campaignID string, filters *domain.AnalyticsFilters) ([]vikaretadomain.DailyAnalytics, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("é necessário informar as datas de início e fim")
	}

	params := url.Values{}
	params.Add("start_date", filters.StartDate.Format(time.DateOnly))
	params.Add("end_date", filters.EndDate.Format(time.DateOnly))

	body, err := c.get(campaignPath(campaignID)+"/analytics", params)
	if err != nil {
		return nil, err
	}

	var response vikaretadomain.ResponseCampaignAnalytics
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar analytics da campanha %s", campaignID)
	}

	if response.Data == nil {
		return []vikaretadomain.DailyAnalytics{}, nil
	}

	return response.Data, nil
}
