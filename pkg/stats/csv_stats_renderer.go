package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats Statistics) (string, error)
}

type CsvStatsRendererImpl struct{}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats writes the totals followed by the category and month tables, separated by
// empty lines.
func (t *CsvStatsRendererImpl) RenderStats(stats Statistics) (string, error) {
	data := make([][]string, 0, 6+len(stats.ByCategory)+len(stats.ByMonth))
	data = append(data,
		[]string{"Total", stats.Total.StringFixed(2)},
		[]string{"Last 30 days", stats.Recent30Days.StringFixed(2)},
		[]string{},
		[]string{"Category ID", "Category", "Total", "Count", "Percentage"},
	)
	for _, c := range stats.ByCategory {
		data = append(data, []string{
			strconv.Itoa(c.CategoryId),
			c.CategoryName,
			c.TotalAmount.StringFixed(2),
			strconv.Itoa(c.Count),
			c.Percentage.StringFixed(2),
		})
	}
	data = append(data, []string{}, []string{"Month", "Total", "Count"})
	for _, m := range stats.ByMonth {
		data = append(data, []string{m.Month, m.TotalAmount.StringFixed(2), strconv.Itoa(m.Count)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
