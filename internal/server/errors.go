package server

import (
	"errors"
	"net/http"

	"github.com/vivekkumar2004/resume-relevance/internal/extraction"
	"github.com/vivekkumar2004/resume-relevance/internal/feedback"
	"github.com/vivekkumar2004/resume-relevance/internal/scoring"
	"github.com/vivekkumar2004/resume-relevance/internal/similarity"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var missingInput *scoring.MissingInputError
	var unsupported *feedback.UnsupportedOptionError
	var parseFailure *extraction.ParseFailureError
	var computation *similarity.ComputationError

	switch {
	case errors.As(err, &missingInput), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &parseFailure), errors.As(err, &computation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
