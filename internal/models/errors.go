package models

import "errors"

// Custom errors
var (
	ErrDatasetNotFound  = errors.New("dataset source not found")
	ErrDatasetEmpty     = errors.New("dataset contains no usable rows")
	ErrUnknownSource    = errors.New("unknown dataset source kind")
	ErrMissingTeam      = errors.New("team1 and team2 are required")
	ErrSameTeams        = errors.New("team1 and team2 must be different")
	ErrUnknownFormat    = errors.New("format not present in dataset")
	ErrTableUnavailable = errors.New("canonical table not loaded")
)
