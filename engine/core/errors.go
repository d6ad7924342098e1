package core

import (
	"errors"
)

var (
	ErrInvalidSchedulerConfig = errors.New("invalid scheduler configuration")
	ErrInvalidRendererConfig  = errors.New("invalid renderer configuration")
	ErrUnsupportedBackend     = errors.New("unsupported graphics backend")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrNoLoader               = errors.New("no loader registered for asset type")
	ErrSceneNotFound          = errors.New("scene not found")
	ErrSceneExists            = errors.New("scene already registered")
	ErrComponentMissing       = errors.New("component missing")
	ErrEntityNotFound         = errors.New("entity not found")
	ErrWindowCreation         = errors.New("failed to create window")
	ErrInvalidIdentifier      = errors.New("identifier out of range")
	ErrInvalidConfig          = errors.New("invalid application configuration")
	ErrNoWorkers              = errors.New("job system needs at least one worker")
	ErrJobSystemClosed        = errors.New("job system shut down")
	ErrUnknown                = errors.New("unknown")
)
