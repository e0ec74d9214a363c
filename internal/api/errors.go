package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sii-blood-analyzer/internal/domain"
)

// writeDomainError maps pipeline errors onto HTTP statuses. Documents
// that were read but held no usable panel are unprocessable; malformed
// requests and uncomputable panels are bad requests; an OCR upstream
// failure surfaces as a bad gateway.
func (s *Server) writeDomainError(c *gin.Context, err error) {
	var (
		formatErr *domain.UnsupportedFormatError
		extErr    *domain.ExtractionError
		calcErr   *domain.SIICalculationError
	)

	switch {
	case errors.As(err, &formatErr):
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeUnsupportedFormat,
			formatErr.Error(), nil)
	case errors.Is(err, domain.ErrCBCNotFound):
		s.writeError(c, http.StatusUnprocessableEntity, domain.ErrCodeCBCNotFound,
			domain.ErrCBCNotFound.Error(), nil)
	case errors.As(err, &extErr):
		status := http.StatusUnprocessableEntity
		code := domain.ErrCodeExtraction
		if extErr.Stage == "textract" {
			status = http.StatusBadGateway
			code = domain.ErrCodeExternalAPI
		}
		s.writeError(c, status, code, extErr.Error(), nil)
	case errors.As(err, &calcErr):
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeSIICalculation,
			calcErr.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(c, http.StatusNotFound, domain.ErrCodeNotFound,
			"record not found", nil)
	default:
		s.logger.WithError(err).Error("Unhandled error in request")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer,
			"internal server error", nil)
	}
}

func (s *Server) writeError(c *gin.Context, status int, code, message string, cause error) {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	apiErr := domain.NewAPIError(code, message, details, c.GetString("request_id"))
	c.AbortWithStatusJSON(status, apiErr)
}
