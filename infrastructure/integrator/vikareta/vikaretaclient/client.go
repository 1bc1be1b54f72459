package vikaretaclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vikaretadomain "github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta/domain"
	"github.com/vfg2006/vikareta-analytics-api/internal/config"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	GetCampaigns(status string) ([]vikaretadomain.Campaign, error)
	GetCampaignAnalytics(campaignID string, filters *domain.AnalyticsFilters) ([]vikaretadomain.DailyAnalytics, error)
}

type VikaretaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &VikaretaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}
}

// get executa um GET autenticado no backend e devolve o corpo da resposta
func (c *VikaretaClient) get(path string, params url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(c.Cfg.Backend.URL, "/") + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")
	if c.Cfg.Backend.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.Cfg.Backend.APIToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("vikareta: erro ao fazer a requisição")
		return nil, errors.Wrapf(err, "erro ao requisitar %s", path)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *VikaretaClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	apiErr := &vikaretadomain.APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}

	var errorResponse vikaretadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error.Message != "" {
		apiErr.Code = errorResponse.Error.Code
		apiErr.Message = errorResponse.Error.Message
	}

	if apiErr.IsUnauthorized() {
		logrus.WithField("status_code", resp.StatusCode).Warn("vikareta: token da API recusado pelo backend")
	}

	return nil, apiErr
}

func campaignPath(campaignID string) string {
	return fmt.Sprintf("/campaigns/%s", url.PathEscape(campaignID))
}
