// Package charts renders spending visualizations as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	apperrors "moneyminder/internal/errors"
	"moneyminder/internal/services"
)

// SpendingBarChart renders a bar chart of per-category spending totals. Rows
// are drawn in the order given (largest first when they come from a
// breakdown). Returns ErrInvalidInput when there is nothing to draw.
func SpendingBarChart(title string, rows []services.CategorySpend) ([]byte, error) {
	if len(rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no spending data to chart")
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		dollars := float64(row.TotalSpent) / 100
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: $%.2f", row.Category, dollars),
			Value: dollars,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(100),
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render spending chart: %w", err)
	}

	return buffer.Bytes(), nil
}
