package vikaretaclient

import (
	"net/url"

	"github.com/pkg/errors"
	vikaretadomain "github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/domain"
)

// GetCampaigns lista as campanhas do backend, opcionalmente filtradas por status
func (c *VikaretaClient) GetCampaigns(status string) ([]vikaretadomain.Campaign, error) {
	params := url.Values{}
	if status != "" {
		params.Add("status", status)
	}

	body, err := c.get("/campaigns", params)
	if err != nil {
		return nil, err
	}

	var response vikaretadomain.ResponseCampaigns
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar campanhas")
	}

	if response.Data == nil {
		return []vikaretadomain.Campaign{}, nil
	}

	return response.Data, nil
}
