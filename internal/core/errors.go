package core

import (
	"errors"
	"fmt"

	"github.com/loverprompt/loverprompt-backend/internal/db"
)

var (
	// ErrGenerationFailed is returned when the text generator could not produce a compliment.
	ErrGenerationFailed = errors.New("compliment generation failed")
	// ErrQuotaExceeded is returned when a free-tier user has used up today's generations.
	ErrQuotaExceeded = errors.New("daily generation quota exceeded")
)

func denied(op, format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	return &db.DataError{Kind: db.KindPermissionDenied, Op: op, Err: err, Msg: err.Error()}
}

func invalid(op string, err error) error {
	return &db.DataError{Kind: db.KindValidation, Op: op, Err: err, Msg: err.Error()}
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// pageSize clamps a requested page size into [1, maxPageSize].
func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}
