// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package editor

import (
	"errors"

	"github.com/tomtom215/parkwatch/internal/geometry"
)

var (
	// ErrUnknownCommand is returned by Apply for an unrecognised command type.
	ErrUnknownCommand = errors.New("unknown editor command")

	// ErrInvalidCommand is returned when a command's payload is malformed,
	// for example an unknown shape kind or a non-positive container size.
	ErrInvalidCommand = errors.New("invalid editor command")
)

// CommandType names an editor command.
type CommandType string

const (
	// Pointer input, in container pixels.
	CmdPointerDown  CommandType = "pointer_down"
	CmdPointerMove  CommandType = "pointer_move"
	CmdPointerUp    CommandType = "pointer_up"
	CmdPointerLeave CommandType = "pointer_leave"
	CmdWheel        CommandType = "wheel"

	// Viewport controls.
	CmdZoomIn          CommandType = "zoom_in"
	CmdZoomOut         CommandType = "zoom_out"
	CmdResetView       CommandType = "reset_view"
	CmdResizeContainer CommandType = "resize_container"
	CmdSetImage        CommandType = "set_image"

	// Drawing.
	CmdDrawMode        CommandType = "draw_mode"
	CmdCancelDrawing   CommandType = "cancel_drawing"
	CmdCompletePolygon CommandType = "complete_polygon"

	// Editing.
	CmdSelect         CommandType = "select"
	CmdEditZone       CommandType = "edit_zone"
	CmdDoneEditing    CommandType = "done_editing"
	CmdUpdateLabel    CommandType = "update_label"
	CmdSetLabelAnchor CommandType = "set_label_anchor"
	CmdSetStatus      CommandType = "set_status"
	CmdDeleteZone     CommandType = "delete_zone"
)

// Command is one unit of editor input. Only the fields its Type uses are read.
// X and Y are container pixel coordinates.
type Command struct {
	Type   CommandType `json:"type" validate:"required"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	Button int         `json:"button,omitempty"`
	DeltaY float64     `json:"delta_y,omitempty"`
	Shape  string      `json:"shape,omitempty"`
	ZoneID string      `json:"zone_id,omitempty"`
	Label  string      `json:"label,omitempty" validate:"max=120"`
	Status string      `json:"status,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
}

func (c Command) screen() geometry.Point {
	return geometry.Pt(c.X, c.Y)
}

// IsPointerMove reports whether the command is high-frequency pointer motion.
func (c Command) IsPointerMove() bool {
	return c.Type == CmdPointerMove
}
