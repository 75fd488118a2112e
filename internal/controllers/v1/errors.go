package v1

import (
	"errors"
	"net/http"

	"github.com/budgetradar/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Import errors
var (
	errNoFilePost        = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix   = errors.New("this endpoint only supports files of the following types")
	errDatasetNameNotSet = errors.New("the name parameter must be set")
	errDatasetNameInUse  = errors.New("this dataset name is already in use. Imports create a new dataset, therefore the name needs to be unique")
)

// Comparison errors
var (
	errOtherParameter = errors.New("the other parameter must be set to the ID of the dataset to compare against")
)

// Template errors
var (
	errTemplateNotFound = errors.New("there is no template matching this ID")
)
