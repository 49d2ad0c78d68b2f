package controllers

import (
	"html/template"
	"sort"

	"github.com/gin-gonic/gin"

	"stackforge/internal/models"
	"stackforge/services"
)

type DashboardController struct {
	health *services.HealthService
}

// NewDashboardController creates the dashboard renderer over a health service.
func NewDashboardController(health *services.HealthService) *DashboardController {
	return &DashboardController{health: health}
}

// RegisterRoutes registers the dashboard route on the Gin engine.
func (d *DashboardController) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/dashboard", d.Dashboard)
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html>
<head><title>Component Status</title></head>
<body>
<h1>Component Status</h1>
<p>Overall: <b>{{if .OverallHealthy}}healthy{{else}}unhealthy{{end}}</b>
 ({{printf "%.1f" .HealthPercentage}}% of nodes healthy, {{.Timestamp.Format "2006-01-02 15:04:05"}})</p>
<ul>
{{range .Rows}}<li style="margin-left:{{.Indent}}em">
  {{if .Healthy}}&#9989;{{else}}&#10060;{{end}} <b>{{.Name}}</b>: {{.Message}}{{if .ResponseTime}} ({{printf "%.1f" .ResponseTime}} ms){{end}}
</li>
{{end}}</ul>
</body>
</html>`))

type dashboardRow struct {
	Name         string
	Healthy      bool
	Message      string
	ResponseTime float64
	Indent       int
}

// @Summary Status dashboard
// @Description Renders an HTML view of the current health snapshot
// @Tags System
// @Produce html
// @Success 200 {string} string
// @Router /api/v1/dashboard [get]
func (d *DashboardController) Dashboard(c *gin.Context) {
	status := d.health.PollAll(c.Request.Context())

	data := struct {
		models.SystemStatus
		HealthPercentage float64
		Rows             []dashboardRow
	}{
		SystemStatus:     status,
		HealthPercentage: status.HealthPercentage(),
		Rows:             flattenRows(status.Components, 0),
	}

	c.Status(200)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(c.Writer, data); err != nil {
		c.String(500, "failed to render dashboard: %v", err)
	}
}

// flattenRows walks the status trees in stable name order, recording nesting
// depth for indentation.
func flattenRows(components map[string]models.ComponentStatus, depth int) []dashboardRow {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []dashboardRow
	for _, name := range names {
		component := components[name]
		row := dashboardRow{
			Name:    component.Name,
			Healthy: component.Healthy,
			Message: component.Message,
			Indent:  depth * 2,
		}
		if component.ResponseTimeMs != nil {
			row.ResponseTime = *component.ResponseTimeMs
		}
		rows = append(rows, row)
		rows = append(rows, flattenRows(component.SubComponents, depth+1)...)
	}
	return rows
}
