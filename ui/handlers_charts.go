package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edascope/domain/dataset"
	"edascope/internal/charts"
	"edascope/internal/errors"
)

// columnParam resolves the named query parameter to a dataset column
func columnParam(c *gin.Context, ds *dataset.Dataset, param string) (*dataset.Column, error) {
	name := c.Query(param)
	if name == "" {
		return nil, errors.InvalidInput(param + " parameter required")
	}
	col := ds.Column(name)
	if col == nil {
		return nil, errors.NotFound("column " + name)
	}
	return col, nil
}

// handleHistogram returns histogram bins and the density overlay for one
// numeric column
func (s *Server) handleHistogram(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	col, err := columnParam(c, sess.Dataset, "column")
	if err != nil {
		respondError(c, err)
		return
	}

	hist, err := charts.NewHistogram(col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

// handleBoxPlot returns the box-plot series for one numeric column
func (s *Server) handleBoxPlot(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	col, err := columnParam(c, sess.Dataset, "column")
	if err != nil {
		respondError(c, err)
		return
	}

	box, err := charts.NewBoxPlot(col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, box)
}

// handleBarChart returns value counts for one categorical column
func (s *Server) handleBarChart(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	col, err := columnParam(c, sess.Dataset, "column")
	if err != nil {
		respondError(c, err)
		return
	}

	bar, err := charts.NewBarChart(col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bar)
}

// handleScatter returns paired points for two numeric columns
func (s *Server) handleScatter(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	x, err := columnParam(c, sess.Dataset, "x")
	if err != nil {
		respondError(c, err)
		return
	}
	y, err := columnParam(c, sess.Dataset, "y")
	if err != nil {
		respondError(c, err)
		return
	}

	scatter, err := charts.NewScatter(x, y)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scatter)
}
