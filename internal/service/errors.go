package service

import "errors"

var (
	ErrCellNotFound     = errors.New("cell not found")
	ErrInvalidTile      = errors.New("invalid tile descriptor")
	ErrInvalidEvent     = errors.New("invalid editor event")
	ErrUnknownWorkspace = errors.New("workspace id must not be empty")
	ErrInternalServer   = errors.New("internal server error")
)
