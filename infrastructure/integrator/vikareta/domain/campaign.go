package vikaretadomain

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DailyAnalytics é um dia de performance como retornado pelo backend.
// Valores monetários podem chegar como string (decimal serializado).
type DailyAnalytics struct {
	Date        string    `json:"date"`
	Impressions FlexInt   `json:"impressions"`
	Clicks      FlexInt   `json:"clicks"`
	Conversions FlexInt   `json:"conversions"`
	Spend       FlexFloat `json:"spend"`
	Revenue     FlexFloat `json:"revenue"`
}

type ResponseCampaigns struct {
	Success bool       `json:"success"`
	Data    []Campaign `json:"data"`
}

type ResponseCampaignAnalytics struct {
	Success bool             `json:"success"`
	Data    []DailyAnalytics `json:"data"`
}
