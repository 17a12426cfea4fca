package ui

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edascope/internal/errors"
)

// handleUpload accepts the multipart upload, parses it into a Dataset and
// recomputes the profile for the session
func (s *Server) handleUpload(c *gin.Context) {
	log.Printf("[handleUpload] Starting file upload process")

	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		respondError(c, errors.InvalidInput("no file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxBytes {
		log.Printf("[handleUpload] FAILED - File too large: %d bytes", header.Size)
		respondError(c, errors.InvalidInput(fmt.Sprintf(
			"file size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), s.cfg.Upload.MaxBytes/(1024*1024))))
		return
	}

	filename := header.Filename
	validExtensions := []string{".csv", ".xlsx", ".xls"}
	hasValidExtension := false
	for _, ext := range validExtensions {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			hasValidExtension = true
			break
		}
	}
	if !hasValidExtension {
		log.Printf("[handleUpload] FAILED - Invalid file extension: %s", filename)
		respondError(c, errors.InvalidInput("only CSV (.csv) and Excel (.xlsx, .xls) files are allowed"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	validMimeTypes := []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // .xlsx
		"application/vnd.ms-excel", // .xls
		"text/csv",
		"application/csv",
		"text/plain", // some browsers report CSV as plain text
		"application/octet-stream",
		"", // some clients omit the part header entirely
	}
	isValidMimeType := false
	for _, mimeType := range validMimeTypes {
		if contentType == mimeType {
			isValidMimeType = true
			break
		}
	}
	if !isValidMimeType && !strings.Contains(contentType, "excel") && !strings.Contains(contentType, "csv") {
		log.Printf("[handleUpload] FAILED - Unexpected MIME type: %s for file: %s", contentType, filename)
		respondError(c, errors.InvalidInput(fmt.Sprintf("unexpected content type %q for a tabular file", contentType)))
		return
	}

	ds, err := s.reader.Read(file, filename)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Parse error: %v", err)
		respondError(c, err)
		return
	}

	prof, err := s.profiler.Build(ds)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Profile error: %v", err)
		respondError(c, err)
		return
	}

	s.store.Put(sessionID(c), ds, prof)
	log.Printf("[handleUpload] Loaded %s: %d rows, %d columns", filename, prof.Shape.Rows, prof.Shape.Cols)

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"rows":     prof.Shape.Rows,
		"cols":     prof.Shape.Cols,
	})
}

// handleOverview returns shape, column types and a data preview
func (s *Server) handleOverview(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":    sess.Dataset.SourceFilename,
		"uploaded_at": sess.Dataset.UploadedAt,
		"shape":       sess.Profile.Shape,
		"columns":     sess.Profile.Columns,
		"duplicates":  sess.Profile.DuplicateRows,
		"headers":     sess.Dataset.ColumnNames(),
		"preview":     sess.Dataset.Head(10),
	})
}

// handleQuality returns the missing-value table, duplicate count and
// outlier reports
func (s *Server) handleQuality(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	type missingEntry struct {
		Column string  `json:"column"`
		Count  int     `json:"count"`
		Pct    float64 `json:"pct"`
	}
	missing := []missingEntry{}
	for _, col := range sess.Profile.Columns {
		if col.MissingCount > 0 {
			missing = append(missing, missingEntry{
				Column: col.Name,
				Count:  col.MissingCount,
				Pct:    col.MissingPct,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"missing":       missing,
		"total_missing": sess.Profile.TotalMissing(),
		"duplicates":    sess.Profile.DuplicateRows,
		"outliers":      sess.Profile.Outliers,
	})
}

// handleStats returns the numeric describe table and correlation matrix
func (s *Server) handleStats(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	numeric := []interface{}{}
	for _, col := range sess.Profile.Columns {
		if col.Numeric != nil {
			numeric = append(numeric, gin.H{"name": col.Name, "stats": col.Numeric})
		}
	}

	resp := gin.H{
		"numeric":         numeric,
		"numeric_columns": sess.Profile.NumericColumnNames(),
	}
	if sess.Profile.Correlation != nil {
		resp["correlation"] = sess.Profile.Correlation
		resp["strong_pairs"] = sess.Profile.Correlation.StrongPairs(0.5)
	}
	c.JSON(http.StatusOK, resp)
}
