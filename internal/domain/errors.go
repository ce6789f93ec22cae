package domain

import "errors"

// Domain errors.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrVaultNotFound     = errors.New("vault directory not found")
	ErrConfigExists      = errors.New("config file already exists")
	ErrConfigNil         = errors.New("config is nil")
	ErrNoLogFile         = errors.New("log file not found")
	ErrEmptyLine         = errors.New("line cannot be empty")
	ErrNotTaskLine       = errors.New("not a task line")
)
