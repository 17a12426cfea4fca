package ui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edascope/internal/report"
)

func reportFilename(ext string) string {
	return fmt.Sprintf("EDA_Report_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// handleReportHTML renders the downloadable HTML report
func (s *Server) handleReportHTML(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	body, err := report.RenderHTML(sess.Dataset, sess.Profile, sess.Insights)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reportFilename("html")+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// handleReportXLSX renders the Excel summary workbook
func (s *Server) handleReportXLSX(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	body, err := report.RenderXLSX(sess.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reportFilename("xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
}

// handleReportCSV renders the metric,value summary CSV
func (s *Server) handleReportCSV(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	body, err := report.RenderCSV(sess.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reportFilename("csv")+`"`)
	c.Data(http.StatusOK, "text/csv", body)
}
