package player

import "errors"

var (
	ErrNoSelection = errors.New("no channel selected")
	ErrNoSurface   = errors.New("no video surface bound")
)
