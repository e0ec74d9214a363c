package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sii-blood-analyzer/internal/domain"
	"github.com/sii-blood-analyzer/internal/service"
)

// handleParseBloodTest accepts a multipart lab report upload under the
// "file" field and runs the full analysis pipeline. An optional
// "cancer_code" form field overrides the diagnosis code found in the
// document.
func (s *Server) handleParseBloodTest(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"multipart field \"file\" is required", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"failed to open uploaded file", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"failed to read uploaded file", err)
		return
	}

	result, err := s.service.Analyze(c.Request.Context(), &domain.AnalysisRequest{
		Filename:   header.Filename,
		Content:    content,
		CancerCode: c.PostForm("cancer_code"),
	})
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleBloodResults takes an already-extracted CBC panel as JSON and
// returns the SII interpretation. The "cancer_code" query parameter
// selects per-cancer reference intervals; without it the generic scale
// applies.
func (s *Server) handleBloodResults(c *gin.Context) {
	var cbc domain.CBCResult
	if err := c.ShouldBindJSON(&cbc); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"invalid CBC payload", err)
		return
	}

	result, err := s.service.InterpretCBC(&cbc, c.Query("cancer_code"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleCancerTypes returns the reference classification catalog.
func (s *Server) handleCancerTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cancer_types": s.service.CancerTypes(),
	})
}

// handleGetAnalysis returns a stored analysis record by ID.
func (s *Server) handleGetAnalysis(c *gin.Context) {
	rec, err := s.service.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		if service.IsNotFound(err) {
			s.writeError(c, http.StatusNotFound, domain.ErrCodeNotFound,
				"analysis not found", err)
			return
		}
		s.writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
