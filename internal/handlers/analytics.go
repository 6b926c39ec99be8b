package handlers

import (
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/internal/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Page recomputes the three aggregates for the current user and renders
// them as a chart page.
func (h *AnalyticsHandler) Page(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	statuses, err := h.svc.StatusDistribution(uid)
	if err != nil {
		log.Error().Err(err).Msg("analytics: status distribution failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	salaries, err := h.svc.SalaryByCompany(uid)
	if err != nil {
		log.Error().Err(err).Msg("analytics: salary aggregation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	weekdays, err := h.svc.ApplicationsByWeekday(uid)
	if err != nil {
		log.Error().Err(err).Msg("analytics: weekday aggregation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = "Analytics"
	page.AddCharts(statusPie(statuses), salaryBar(salaries), weekdayHeatMap(weekdays))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		log.Error().Err(err).Msg("analytics: chart render failed")
	}
}

func statusPie(rows []services.StatusCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Application status distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	data := make([]opts.PieData, 0, len(rows))
	for _, row := range rows {
		data = append(data, opts.PieData{Name: row.Status, Value: row.Count})
	}
	pie.AddSeries("status", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))
	return pie
}

func salaryBar(rows []services.CompanySalary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average salary by company"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	names := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Company)
		data = append(data, opts.BarData{Value: row.AvgSalary})
	}
	bar.SetXAxis(names).AddSeries("average salary", data)
	return bar
}

func weekdayHeatMap(rows []services.WeekdayCount) *charts.HeatMap {
	days := make([]string, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days = append(days, wd.String())
	}
	var maxCount int64 = 1
	data := make([]opts.HeatMapData, 0, len(rows))
	for _, row := range rows {
		if row.Count > maxCount {
			maxCount = row.Count
		}
		data = append(data, opts.HeatMapData{Value: [3]any{int(row.Weekday), 0, row.Count}})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Applications by day of week"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: days}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: []string{"Applications"}}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: 0, Max: float32(maxCount)}),
	)
	hm.AddSeries("applications", data)
	return hm
}
