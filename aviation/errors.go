// aviation/errors.go
// Copyright(c) 2023-2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrInsufficientTurnpoints  = errors.New("Task must have at least two turnpoints")
	ErrMalformedAirspaceRecord = errors.New("Malformed airspace record")
	ErrMalformedInput          = errors.New("Malformed input")
	ErrMissingFile             = errors.New("File not found")
	ErrUnknownTurnpointType    = errors.New("Unknown turnpoint type")
)
