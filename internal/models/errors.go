package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrDatasetNameNotUnique   = errors.New("the dataset name must be unique")
	ErrMatchRuleMatchNotEmpty = errors.New("the match for a match rule must not be empty")
	ErrAmountRequired         = errors.New("every line item must have an amount")
	ErrDescriptionRequired    = errors.New("every line item must have a description")
)
