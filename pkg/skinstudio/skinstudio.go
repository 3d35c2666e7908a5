// Package skinstudio provides the public Go library API for skin-studio.
//
// skin-studio authors emulator skin configuration documents: it places
// buttons, d-pads, thumbsticks and screen mappings on a device-sized canvas
// and keeps the nested document consistent as they are edited. Every edit
// is persisted to a snapshot, so separate processes see the same document.
//
// # Basic Usage
//
//	client, err := skinstudio.New(skinstudio.Options{
//	    ConfigPath: "skin-studio.yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start a new skin from the template and load reference data
//	doc, err := client.Init(ctx)
//
//	// Place a button and a screen
//	item, _, err := client.AddControl(skinstudio.ControlSpec{Type: "a", Frame: frame})
//	index, screen, err := client.AddScreen(input, output)
//
//	// Write the skin out
//	data, err := client.ExportJSON()
package skinstudio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bianoble/skin-studio/internal/cache"
	"github.com/bianoble/skin-studio/internal/config"
	"github.com/bianoble/skin-studio/internal/controls"
	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/internal/logging"
	"github.com/bianoble/skin-studio/internal/reference"
	"github.com/bianoble/skin-studio/internal/screens"
	"github.com/bianoble/skin-studio/internal/session"
	"github.com/bianoble/skin-studio/internal/skin"
	"github.com/bianoble/skin-studio/internal/store"
)

// Options configures a skin-studio client.
type Options struct {
	// ConfigPath is the project settings file. Default: "skin-studio.yaml".
	// A missing file means built-in defaults.
	ConfigPath string

	// ProjectRoot resolves relative reference locations. If empty, defaults
	// to the directory containing ConfigPath.
	ProjectRoot string

	// StatePath overrides where the snapshot is kept.
	StatePath string

	// NoInherit skips the system and user settings layers.
	NoInherit bool

	// HTTPClient fetches URL reference data. Default: http.DefaultClient.
	HTTPClient HTTPClient

	// CacheDir keeps the last good copy of URL reference data. Default:
	// ~/.cache/skin-studio. NoCache disables the fallback.
	CacheDir string
	NoCache  bool

	// LogOutput receives log lines. Default: discarded. Entries are
	// retained either way, see Log.
	LogOutput io.Writer
	Debug     bool
}

// Client is the main entry point for the skin-studio library.
type Client struct {
	cfg      *config.Config
	log      *logging.Logger
	fetcher  reference.Loader
	session  *session.Session
	controls *controls.Registry
	screens  *screens.Registry
	store    *store.FileStore

	mu      sync.RWMutex
	catalog *reference.Catalog
}

// New creates a new skin-studio Client. Nothing is fetched until Init or
// a call that needs reference data.
func New(opts Options) (*Client, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultFileName
	}

	root := opts.ProjectRoot
	if root == "" {
		abs, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		root = filepath.Dir(abs)
	}

	cfg, _, err := config.LoadLayered(config.DiscoverOptions{
		ProjectPath: opts.ConfigPath,
		NoInherit:   opts.NoInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	log := logging.New(out, opts.Debug)

	statePath := opts.StatePath
	if statePath == "" {
		statePath = cfg.Storage
	}
	st, err := store.NewFileStore(statePath)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = reference.DefaultHTTPClient{}
	}
	base := &reference.Fetcher{
		Client:  httpClient,
		BaseDir: root,
		MaxSize: cfg.MaxFetchSize,
		Timeout: cfg.Timeout(),
	}
	var fetcher reference.Loader = base
	if !opts.NoCache {
		cacheDir := opts.CacheDir
		if cacheDir == "" {
			cacheDir = cache.DefaultDir()
		}
		fetcher = &reference.CachingFetcher{
			Fetcher: base,
			Cache:   cache.New(cacheDir),
			Log:     log,
		}
	}

	sess := session.New(session.Options{
		Store:    st,
		Fetcher:  fetcher,
		Template: cfg.Template,
		Log:      log,
	})

	c := &Client{
		cfg:      cfg,
		log:      log,
		fetcher:  fetcher,
		session:  sess,
		controls: controls.New(sess),
		store:    st,
	}
	c.screens = screens.New(sess, catalogRatios{c})
	return c, nil
}

// Config returns the merged settings the client runs with.
func (c *Client) Config() Config {
	return *c.cfg
}

// StatePath returns the snapshot file.
func (c *Client) StatePath() string {
	return c.store.Path()
}

// Init starts a new skin from the template, replacing any stored snapshot,
// while the reference catalogs load alongside it. Reference and template
// failures degrade with a warning; only a failure to persist is returned.
// When the configured device is in the catalog its mapping size is applied.
func (c *Client) Init(ctx context.Context) (*Document, error) {
	var (
		wg     sync.WaitGroup
		doc    *Document
		docErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		doc, docErr = c.session.Load(ctx)
	}()
	go func() {
		defer wg.Done()
		c.loadCatalog(ctx)
	}()
	wg.Wait()
	if docErr != nil {
		return nil, docErr
	}

	orientation, err := geometry.ParseOrientation(c.cfg.Orientation)
	if err != nil {
		return nil, err
	}
	model := c.cfg.Device
	if model == "" {
		model = reference.DefaultDeviceModel
	}
	if _, err := c.SetDevice(ctx, model, orientation); err != nil {
		c.log.Warn("device %s: %v", model, err)
		return doc, nil
	}
	return c.session.Current()
}

// Catalog returns the reference data, loading it on first use.
func (c *Client) Catalog(ctx context.Context) *Catalog {
	c.mu.RLock()
	cat := c.catalog
	c.mu.RUnlock()
	if cat != nil {
		return cat
	}
	return c.loadCatalog(ctx)
}

func (c *Client) loadCatalog(ctx context.Context) *reference.Catalog {
	cat := reference.LoadCatalog(ctx, c.fetcher, reference.Sources{
		Devices:      c.cfg.Reference.Devices,
		Consoles:     c.cfg.Reference.Consoles,
		Buttons:      c.cfg.Reference.Buttons,
		AspectRatios: c.cfg.Reference.AspectRatios,
	}, c.log)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = cat
	return cat
}

// catalogRatios serves aspect ratios from whatever catalog is loaded.
type catalogRatios struct{ c *Client }

func (r catalogRatios) AspectRatio(consoleKey string) (float64, float64, error) {
	r.c.mu.RLock()
	cat := r.c.catalog
	r.c.mu.RUnlock()
	if cat == nil {
		return 0, 0, fmt.Errorf("%w for console '%s' (reference data not loaded)", ErrRatioNotFound, consoleKey)
	}
	return cat.AspectRatio(consoleKey)
}

// Current returns the live document, including editor ids and thumbstick
// image data. It returns nil, nil when no skin has been started.
func (c *Client) Current() (*Document, error) {
	return c.session.Current()
}

// Export returns the document as exported: no image data, no ids.
func (c *Client) Export() (*Document, error) {
	return c.session.ExportView()
}

// ExportJSON returns the exported document as indented JSON.
func (c *Client) ExportJSON() ([]byte, error) {
	return c.session.ExportJSON()
}

// WriteExport writes the exported JSON to path.
func (c *Client) WriteExport(path string) error {
	data, err := c.ExportJSON()
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Merge applies a raw patch to the document.
func (c *Client) Merge(patch Patch) (*Document, error) {
	return c.session.Merge(patch)
}

// UpdateSettings changes the document's name, identifier or debug flag.
func (c *Client) UpdateSettings(s Settings) (*Document, error) {
	return c.session.Merge(skin.Patch{
		Name:       s.Name,
		Identifier: s.Identifier,
		Debug:      s.Debug,
	})
}

// SetGameType selects the console by game type identifier. An empty id
// clears the selection.
func (c *Client) SetGameType(id string) (*Document, error) {
	return c.session.Merge(skin.Patch{GameTypeIdentifier: skin.String(id)})
}

// SetDevice looks model up in the device catalog and sets the mapping size
// for the given orientation.
func (c *Client) SetDevice(ctx context.Context, model string, o Orientation) (Size, error) {
	cat := c.Catalog(ctx)
	dev, ok := cat.Device(model)
	if !ok {
		if known := cat.DeviceModels(); len(known) > 0 {
			return Size{}, fmt.Errorf("%w: '%s' (known: %s)", ErrUnknownDevice, model, strings.Join(known, ", "))
		}
		return Size{}, fmt.Errorf("%w: '%s'", ErrUnknownDevice, model)
	}
	size := geometry.MappingSize(dev.Size(), o)
	_, err := c.session.Update(func(doc *skin.Document) (skin.Patch, error) {
		doc.Portrait().MappingSize = size
		return skin.RepresentationsPatch(doc.Representations), nil
	})
	if err != nil {
		return Size{}, err
	}
	c.log.Dbg("device %s (%s): mapping size %vx%v", model, o, size.Width, size.Height)
	return size, nil
}

// ButtonTypes lists the control types offered for the selected console.
// It is empty until a console is selected.
func (c *Client) ButtonTypes(ctx context.Context) ([]ButtonOption, error) {
	doc, err := c.session.Current()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotInitialized
	}
	return c.Catalog(ctx).ButtonTypes(reference.ConsoleKey(doc.GameType())), nil
}

// Log returns the retained log entries, oldest first.
func (c *Client) Log() []LogEntry {
	return c.log.Entries()
}

// Warnings returns the retained warnings and errors.
func (c *Client) Warnings() []LogEntry {
	return c.log.EntriesAtLeast(logging.LevelWarn)
}

// Reset drops the in-memory document so the next read comes from the
// snapshot.
func (c *Client) Reset() {
	c.session.Reset()
}
