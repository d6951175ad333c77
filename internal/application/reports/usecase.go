package reports

import (
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// ReportUseCase reportes de ingresos y ganancia por día calendario.
// Los días sin pedidos aparecen con total 0, no se omiten.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	batchRepo   repository.StockBatchRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	batchRepo repository.StockBatchRepository,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, orderRepo: orderRepo, batchRepo: batchRepo}
}

// Daily calcula la serie diaria del producto para la métrica pedida
// (revenue suma AmountPaid, profit suma AmountPaid menos costo FIFO).
func (uc *ReportUseCase) Daily(in dto.DailyReportRequest) (*dto.DailyReportResponse, error) {
	metric := in.Metric
	if metric == "" {
		metric = stock.MetricRevenue
	}
	if !stock.ValidMetric(metric) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	from, to, err := parsePeriod(in.Period, in.From, in.To)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.ListByProductAndDateRange(in.ProductID, from, to)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batchRepo.ListByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	points := stock.DailyAggregate(orders, stock.BatchIndex(batches), metric, from, to)

	total := decimal.Zero
	items := make([]dto.DailyPointResponse, 0, len(points))
	for _, p := range points {
		items = append(items, dto.DailyPointResponse{
			Day:   p.Day.Format(dayLayout),
			Total: p.Total,
		})
		total = total.Add(p.Total)
	}
	return &dto.DailyReportResponse{
		ProductID: in.ProductID,
		Metric:    metric,
		From:      from.Format(dayLayout),
		To:        to.Format(dayLayout),
		Points:    items,
		Total:     total,
	}, nil
}

// parsePeriod resuelve el rango de fechas: period es un atajo relativo a hoy
// (week, month, quarter, year); from/to explícitos lo sobreescriben.
// Aplica valores por defecto si están vacíos (último mes).
func parsePeriod(period, fromStr, toStr string) (from, to time.Time, err error) {
	now := time.Now()

	if toStr == "" {
		to = now
	} else {
		to, err = time.ParseInLocation(dayLayout, toStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to inválido", domain.ErrInvalidInput)
		}
		to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // inclusive hasta el final del día
	}

	if fromStr != "" {
		from, err = time.ParseInLocation(dayLayout, fromStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from inválido", domain.ErrInvalidInput)
		}
	} else {
		switch period {
		case "week":
			from = to.AddDate(0, 0, -6)
		case "quarter":
			from = to.AddDate(0, -3, 0)
		case "year":
			from = to.AddDate(-1, 0, 0)
		case "month", "":
			from = to.AddDate(0, -1, 0)
		default:
			return time.Time{}, time.Time{}, fmt.Errorf("%w: period desconocido %q", domain.ErrInvalidInput, period)
		}
		from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, now.Location())
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return from, to, nil
}
