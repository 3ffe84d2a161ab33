package stats

import (
	"net/http"
	"strings"

	"github.com/spendwise/spendwise/internal/rest"
	"github.com/spendwise/spendwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

type StatisticsDTO struct {
	Total        float64            `json:"total"`
	Recent30Days float64            `json:"recent30Days"`
	ByCategory   []CategoryStatsDTO `json:"byCategory"`
	ByMonth      []MonthStatsDTO    `json:"byMonth"`
}

type CategoryStatsDTO struct {
	CategoryId   int     `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	TotalAmount  float64 `json:"totalAmount"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

type MonthStatsDTO struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetStats godoc
// @Summary Get expense statistics
// @Description Totals, last 30 days, per category and per month for the current user.
// @Description Answers text/csv when the Accept header asks for it.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Success 200 {object} StatisticsDTO
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Failure 500 {object} rest.ErrorResponse "Storage failure"
// @Router /api/expense/stats [get]
// @Security XUserId
func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := handler.statsService.GetStats(r.Context())
	if err != nil {
		user.WriteAuthError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			rest.WriteInternalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv stats: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, toDTO(stats))
}

func toDTO(stats Statistics) StatisticsDTO {
	byCategory := make([]CategoryStatsDTO, 0, len(stats.ByCategory))
	for _, c := range stats.ByCategory {
		byCategory = append(byCategory, CategoryStatsDTO{
			CategoryId:   c.CategoryId,
			CategoryName: c.CategoryName,
			TotalAmount:  c.TotalAmount.InexactFloat64(),
			Count:        c.Count,
			Percentage:   c.Percentage.InexactFloat64(),
		})
	}
	byMonth := make([]MonthStatsDTO, 0, len(stats.ByMonth))
	for _, m := range stats.ByMonth {
		byMonth = append(byMonth, MonthStatsDTO{Month: m.Month, TotalAmount: m.TotalAmount.InexactFloat64(), Count: m.Count})
	}
	return StatisticsDTO{
		Total:        stats.Total.InexactFloat64(),
		Recent30Days: stats.Recent30Days.InexactFloat64(),
		ByCategory:   byCategory,
		ByMonth:      byMonth,
	}
}
