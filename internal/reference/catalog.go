// Package reference loads the read-only catalogs a skin is authored against:
// device sizes, console identifiers, the buttons each console offers, and
// console screen aspect ratios.
package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/logging"
)

// ErrRatioNotFound is returned when a console has no aspect-ratio entry.
var ErrRatioNotFound = errors.New("aspect ratio not found")

// CommonButtons are offered for every console, after its own buttons.
var CommonButtons = []string{"menu", "quickSave", "quickLoad", "fastForward", "toggleFastForward"}

// DefaultDeviceModel is selected when no device is configured.
const DefaultDeviceModel = "iPhone 15 Pro"

// Device is a phone model and its portrait logical size in points.
type Device struct {
	Model         string  `json:"model" yaml:"model"`
	LogicalWidth  float64 `json:"logicalWidth" yaml:"logicalWidth"`
	LogicalHeight float64 `json:"logicalHeight" yaml:"logicalHeight"`
}

// Size returns the device's portrait logical size.
func (d Device) Size() geometry.Size {
	return geometry.Size{Width: d.LogicalWidth, Height: d.LogicalHeight}
}

// Console maps a game type identifier to a display name.
type Console struct {
	GameTypeIdentifier string `json:"gameTypeIdentifier" yaml:"gameTypeIdentifier"`
	Console            string `json:"console" yaml:"console"`
}

// Sources lists where each catalog is fetched from.
type Sources struct {
	Devices      string
	Consoles     string
	Buttons      string
	AspectRatios string
}

// Catalog is the loaded reference data. Any part may be empty.
type Catalog struct {
	Devices      []Device
	Consoles     []Console
	Buttons      map[string][]string // console key -> button types
	AspectRatios map[string]string   // console key -> "num/den"
}

// Loader fetches raw catalog content.
type Loader interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// LoadCatalog fetches all four catalogs concurrently. Each one degrades to
// an empty collection on failure, logged as a warning; a failure never
// blocks or aborts the others.
func LoadCatalog(ctx context.Context, loader Loader, src Sources, log *logging.Logger) *Catalog {
	var (
		wg       sync.WaitGroup
		devices  []Device
		consoles []Console
		buttons  map[string][]string
		ratios   map[string]string
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		devices, _ = loadCatalogFile[[]Device](ctx, loader, "device catalog", src.Devices, log)
	}()
	go func() {
		defer wg.Done()
		consoles, _ = loadCatalogFile[[]Console](ctx, loader, "console catalog", src.Consoles, log)
	}()
	go func() {
		defer wg.Done()
		buttons, _ = loadCatalogFile[map[string][]string](ctx, loader, "available buttons", src.Buttons, log)
	}()
	go func() {
		defer wg.Done()
		ratios, _ = loadCatalogFile[map[string]string](ctx, loader, "aspect ratios", src.AspectRatios, log)
	}()
	wg.Wait()

	cat := &Catalog{
		Devices:      devices,
		Consoles:     consoles,
		Buttons:      buttons,
		AspectRatios: ratios,
	}
	if cat.Devices == nil {
		cat.Devices = []Device{}
	}
	if cat.Consoles == nil {
		cat.Consoles = []Console{}
	}
	if cat.Buttons == nil {
		cat.Buttons = map[string][]string{}
	}
	if cat.AspectRatios == nil {
		cat.AspectRatios = map[string]string{}
	}
	return cat
}

// loadCatalogFile decodes one catalog into a fresh value. A partially
// decoded value is discarded, so a malformed file yields the zero value.
func loadCatalogFile[T any](ctx context.Context, loader Loader, name, location string, log *logging.Logger) (T, bool) {
	var zero T
	if location == "" {
		log.Dbg("no %s location configured", name)
		return zero, false
	}
	var v T
	if err := loadInto(ctx, loader, location, &v); err != nil {
		log.Warn("failed to load %s, using empty data: %v", name, err)
		return zero, false
	}
	log.Dbg("loaded %s from %s", name, location)
	return v, true
}

func loadInto(ctx context.Context, loader Loader, location string, out any) error {
	data, err := loader.Fetch(ctx, location)
	if err != nil {
		return err
	}
	if err := Decode(data, out); err != nil {
		return &FetchError{Location: location, Err: err, Hint: "check that the file is valid JSON or YAML"}
	}
	return nil
}

// Decode parses catalog content. JSON documents are decoded as JSON; anything
// else is treated as YAML.
func Decode(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// ConsoleKey returns the trailing component of a reverse-DNS game type
// identifier, e.g. "gba" for "com.rileytestut.delta.game.gba".
func ConsoleKey(gameTypeIdentifier string) string {
	if gameTypeIdentifier == "" {
		return ""
	}
	idx := strings.LastIndex(gameTypeIdentifier, ".")
	return gameTypeIdentifier[idx+1:]
}

// Device returns the device with the given model name.
func (c *Catalog) Device(model string) (Device, bool) {
	for _, d := range c.Devices {
		if d.Model == model {
			return d, true
		}
	}
	return Device{}, false
}

// Console returns the console entry for a game type identifier.
func (c *Catalog) Console(gameTypeIdentifier string) (Console, bool) {
	for _, con := range c.Consoles {
		if con.GameTypeIdentifier == gameTypeIdentifier {
			return con, true
		}
	}
	return Console{}, false
}

// ButtonOption is a selectable control type.
type ButtonOption struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Common bool   `json:"common"`
}

// ButtonTypes returns the control types offered for a console: its own
// buttons first, then CommonButtons. An empty key returns nothing, since
// controls cannot be added before a console is selected.
func (c *Catalog) ButtonTypes(consoleKey string) []ButtonOption {
	if consoleKey == "" {
		return nil
	}
	specific := c.Buttons[consoleKey]
	opts := make([]ButtonOption, 0, len(specific)+len(CommonButtons))
	for _, b := range specific {
		opts = append(opts, ButtonOption{Type: b, Label: ButtonLabel(b, false)})
	}
	for _, b := range CommonButtons {
		opts = append(opts, ButtonOption{Type: b, Label: ButtonLabel(b, true), Common: true})
	}
	return opts
}

// ButtonLabel renders a display label. Console buttons are upper-cased;
// common buttons are split on capitals and suffixed, so "quickSave"
// becomes "Quick Save Button".
func ButtonLabel(buttonType string, common bool) string {
	if !common {
		return strings.ToUpper(buttonType)
	}
	var b strings.Builder
	for i, r := range buttonType {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String() + " Button"
}

// AspectRatio returns the parsed screen aspect ratio for a console key.
func (c *Catalog) AspectRatio(consoleKey string) (num, den float64, err error) {
	raw, ok := c.AspectRatios[consoleKey]
	if !ok || consoleKey == "" {
		return 0, 0, fmt.Errorf("%w for console '%s'", ErrRatioNotFound, consoleKey)
	}
	return geometry.ParseRatio(raw)
}

// DeviceModels returns the device model names in catalog order.
func (c *Catalog) DeviceModels() []string {
	names := make([]string, len(c.Devices))
	for i, d := range c.Devices {
		names[i] = d.Model
	}
	return names
}

// ConsoleKeys returns the sorted keys of the available-buttons map.
func (c *Catalog) ConsoleKeys() []string {
	keys := make([]string, 0, len(c.Buttons))
	for k := range c.Buttons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
