package trawl

import "errors"

var (
	// Configuration errors.
	ErrNoClient      = errors.New("trawl: no platform client configured")
	ErrNoSpider      = errors.New("trawl: no spider set")
	ErrInvalidConfig = errors.New("trawl: invalid configuration")

	// Lifecycle errors.
	ErrManagerClosed  = errors.New("trawl: manager closed")
	ErrAlreadyRunning = errors.New("trawl: manager already running")

	// Store errors.
	ErrCheckpointNotFound = errors.New("trawl: checkpoint not found")
	ErrStoreClosed        = errors.New("trawl: store closed")
)
