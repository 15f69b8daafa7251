package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thobs40/LLM-Rights-Monitor/internal/incident"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

func (s *Server) handleHealth(c *gin.Context) {
	incs, err := s.provider.Incidents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime":         time.Since(s.startTime).String(),
		"incident_count": len(incs),
	})
}

func (s *Server) handleIncidents(c *gin.Context) {
	sev, err := incident.ParseSeverityFilter(c.Query("severity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := incident.ParseStatusFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incs, err := s.provider.Incidents(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to read incidents", err)
		return
	}

	results := incident.Filter(incs, incident.Query{Text: c.Query("q"), Severity: sev, Status: status})
	c.JSON(http.StatusOK, gin.H{
		"incidents": results,
		"count":     len(results),
		"total":     len(incs),
	})
}

// lookupIncident writes a 404 or 500 response and returns false when the
// incident named by the :id param cannot be produced.
func (s *Server) lookupIncident(c *gin.Context) (model.Incident, bool) {
	incs, err := s.provider.Incidents(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to read incidents", err)
		return model.Incident{}, false
	}
	id := c.Param("id")
	for _, inc := range incs {
		if inc.ID == id {
			return inc, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	return model.Incident{}, false
}

func (s *Server) handleIncident(c *gin.Context) {
	inc, ok := s.lookupIncident(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inc)
}

func (s *Server) handleAnalysis(c *gin.Context) {
	inc, ok := s.lookupIncident(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Analyze(c.Request.Context(), inc))
}

func (s *Server) handleMetricSeries(c *gin.Context) {
	points, err := s.provider.Metrics(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to read metric series", err)
		return
	}

	total := 0
	for _, p := range points {
		total += p.Infringements
	}
	c.JSON(http.StatusOK, gin.H{
		"points":              points,
		"total_infringements": total,
	})
}

func (s *Server) handleKPIs(c *gin.Context) {
	kpis, err := s.provider.KPIs(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to read kpis", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}

// ruleView adds the derived gauge fill to a rule for API consumers.
type ruleView struct {
	model.DataQualityRule
	Progress float64 `json:"progress"`
	Breached bool    `json:"breached"`
}

func (s *Server) handleQualityRules(c *gin.Context) {
	rules, err := s.provider.QualityRules(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to read quality rules", err)
		return
	}

	views := make([]ruleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, ruleView{DataQualityRule: r, Progress: r.Progress(), Breached: r.Breached()})
	}
	c.JSON(http.StatusOK, gin.H{"rules": views})
}

func (s *Server) handleRuleHistory(c *gin.Context) {
	h, err := s.provider.RuleHistory(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
		return
	}
	if err != nil {
		s.internalError(c, "failed to read rule history", err)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (s *Server) handleRerun(c *gin.Context) {
	regen, ok := s.provider.(model.Regenerator)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "data source does not support validation re-runs"})
		return
	}
	if err := regen.Regenerate(c.Request.Context()); err != nil {
		s.internalError(c, "failed to re-run validation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "updated_at": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) handleTelemetry(c *gin.Context) {
	ctx := c.Request.Context()
	nodes, err := s.provider.TelemetryNodes(ctx)
	if err != nil {
		s.internalError(c, "failed to read telemetry nodes", err)
		return
	}
	notes, err := s.provider.TelemetryNotes(ctx)
	if err != nil {
		s.internalError(c, "failed to read telemetry notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nodes": nodes, "notes": notes})
}

func (s *Server) internalError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
