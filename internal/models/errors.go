package models

import "errors"

var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidBar       = errors.New("invalid bar (high < low)")
	ErrInvalidVolume    = errors.New("invalid volume")
	ErrUnorderedSeries  = errors.New("bars are not in ascending time order")
	ErrEmptyExpression  = errors.New("expression cannot be empty")
)
