package skinstudio

import (
	"errors"

	"github.com/bianoble/skin-studio/internal/config"
	"github.com/bianoble/skin-studio/internal/controls"
	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/logging"
	"github.com/bianoble/skin-studio/internal/reference"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
)

// Document model.
type (
	Document    = skin.Document
	Layout      = skin.Layout
	ControlItem = skin.ControlItem
	ScreenItem  = skin.ScreenItem
	Patch       = skin.Patch
)

// Geometry.
type (
	Frame       = geometry.Frame
	Edges       = geometry.Edges
	Point       = geometry.Point
	Size        = geometry.Size
	Rect        = geometry.Rect
	Orientation = geometry.Orientation
)

const (
	Portrait  = geometry.Portrait
	Landscape = geometry.Landscape
)

// Controls.
type (
	ControlSpec = controls.Spec
	Image       = controls.Image
	Attachment  = controls.Attachment
)

// Reference data.
type (
	Catalog      = reference.Catalog
	Device       = reference.Device
	Console      = reference.Console
	ButtonOption = reference.ButtonOption
	FetchError   = reference.FetchError
)

// Config is the merged skin-studio.yaml settings.
type Config = config.Config

// LogEntry is a retained log line.
type LogEntry = logging.Entry

// Errors callers can match with errors.Is.
var (
	ErrLoadFailure       = reference.ErrLoadFailure
	ErrMissingType       = skin.ErrMissingType
	ErrNotFound          = skin.ErrNotFound
	ErrInvalidDimensions = geometry.ErrInvalidDimensions
	ErrInvalidRatio      = geometry.ErrInvalidRatio
	ErrRatioNotFound     = reference.ErrRatioNotFound
	ErrNotInitialized    = session.ErrNotInitialized

	// ErrUnknownDevice is returned by SetDevice for a model missing from
	// the device catalog.
	ErrUnknownDevice = errors.New("unknown device")
)

// Settings holds the top-level document fields changed by UpdateSettings.
// Nil fields are left as they are.
type Settings struct {
	Name       *string `json:"name,omitempty"`
	Identifier *string `json:"identifier,omitempty"`
	Debug      *bool   `json:"debug,omitempty"`
}

// HTTPClient performs reference-data requests.
type HTTPClient = reference.HTTPClient
