package dto

import "github.com/shopspring/decimal"

// DailyReportRequest parámetros del reporte diario.
type DailyReportRequest struct {
	ProductID string `query:"product_id" validate:"required,uuid"`
	Metric    string `query:"metric" validate:"omitempty,oneof=revenue profit"`
	Period    string `query:"period" validate:"omitempty,oneof=week month quarter year"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// DailyPointResponse total de un día calendario (los días sin pedidos
// aparecen con total cero).
type DailyPointResponse struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// DailyReportResponse serie diaria de ingresos o ganancia.
type DailyReportResponse struct {
	ProductID string               `json:"product_id"`
	Metric    string               `json:"metric"`
	From      string               `json:"from"`
	To        string               `json:"to"`
	Points    []DailyPointResponse `json:"points"`
	Total     decimal.Decimal      `json:"total"`
}
