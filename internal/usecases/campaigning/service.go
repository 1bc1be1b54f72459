package campaigning

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/integrator/vikareta"
	"github.com/vfg2006/vikareta-analytics-api/infrastructure/repository"
	"github.com/vfg2006/vikareta-analytics-api/internal/domain"
	"github.com/vfg2006/vikareta-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/vikareta-analytics-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_campaign_service.go -package=mocks

type CampaignService interface {
	ListCampaigns(statuses []domain.CampaignStatus) ([]*domain.Campaign, error)
	GetCampaign(campaignID string) (*domain.Campaign, error)
	SyncCampaigns() ([]*domain.Campaign, *domain.SyncCampaignsResponse, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	integrator         vikareta.Integrator
}

func NewService(campaignRepository repository.CampaignRepository, integrator vikareta.Integrator) CampaignService {
	return &Service{
		campaignRepository: campaignRepository,
		integrator:         integrator,
	}
}

func (s *Service) ListCampaigns(statuses []domain.CampaignStatus) ([]*domain.Campaign, error) {
	for _, status := range statuses {
		if !isValidStatus(status) {
			return nil, NewCampaignError(ErrInvalidStatus, apiErrors.ErrInvalidRequest, fmt.Sprintf("Status inválido: %s", status))
		}
	}

	campaigns, err := s.campaignRepository.List(statuses)
	if err != nil {
		logrus.WithError(err).Error("campaigns: erro ao listar campanhas")
		return nil, NewCampaignError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao listar campanhas no banco de dados")
	}

	if campaigns == nil {
		return []*domain.Campaign{}, nil
	}

	return campaigns, nil
}

func (s *Service) GetCampaign(campaignID string) (*domain.Campaign, error) {
	if campaignID == "" {
		return nil, NewCampaignError(ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID da campanha")
	}

	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err == nil && campaign == nil {
		campaign, err = s.campaignRepository.GetByExternalID(campaignID)
	}
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Error("campaigns: erro ao buscar campanha")
		return nil, NewCampaignErrorWithID(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao buscar campanha")
	}

	if campaign == nil {
		return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
	}

	return campaign, nil
}

// SyncCampaigns traz as campanhas ativas do backend e faz upsert por external_id.
// As campanhas retornadas já carregam o ID interno resolvido pelo banco.
func (s *Service) SyncCampaigns() ([]*domain.Campaign, *domain.SyncCampaignsResponse, error) {
	response := &domain.SyncCampaignsResponse{
		Message: "Erro ao sincronizar campanhas",
		Error:   true,
	}

	campaigns, err := s.integrator.FetchActiveCampaigns()
	if err != nil {
		logrus.WithError(err).Error("campaigns: erro ao buscar campanhas no backend")
		return nil, response, NewCampaignError(ErrBackendIntegration, apiErrors.ErrExternalService, "Falha ao obter campanhas do backend")
	}

	for _, campaign := range campaigns {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, response, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador para campanha")
		}
		campaign.ID = id
	}

	if len(campaigns) > 0 {
		ids, err := s.campaignRepository.SaveOrUpdate(campaigns)
		if err != nil {
			logrus.WithError(err).Error("campaigns: erro ao salvar campanhas")
			return nil, response, NewCampaignError(ErrSaveCampaigns, apiErrors.ErrDatabaseOperation, "Falha ao salvar campanhas")
		}

		for _, campaign := range campaigns {
			if id, ok := ids[campaign.ExternalID]; ok {
				campaign.ID = id
			}
		}
	}

	quantity := len(campaigns)
	logrus.Infof("campaigns: %d campanhas sincronizadas", quantity)

	response.Quantity = quantity
	response.Message = fmt.Sprintf("%d campanhas foram sincronizadas com sucesso", quantity)
	response.Error = false

	return campaigns, response, nil
}

func isValidStatus(status domain.CampaignStatus) bool {
	switch status {
	case domain.CampaignStatusActive, domain.CampaignStatusPaused, domain.CampaignStatusCompleted, domain.CampaignStatusDraft:
		return true
	}
	return false
}
