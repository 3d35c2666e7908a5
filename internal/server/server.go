// Package server exposes the skin-studio client over a small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/bianoble/skin-studio/internal/geometry"
	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

// controlRequest is the body of POST /api/controls and PUT /api/controls/:id.
type controlRequest struct {
	Type          string             `json:"type"`
	Frame         skinstudio.Frame   `json:"frame"`
	ExtendedEdges skinstudio.Edges   `json:"extendedEdges"`
	Thumbstick    *thumbstickRequest `json:"thumbstick,omitempty"`
}

// thumbstickRequest carries thumbstick artwork as base64.
type thumbstickRequest struct {
	Name   string  `json:"name"`
	Data   string  `json:"data"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type screenRequest struct {
	InputFrame  skinstudio.Frame `json:"inputFrame"`
	OutputFrame skinstudio.Frame `json:"outputFrame"`
}

// resizeRequest selects one resize mode: Width scales keeping the current
// ratio, Ratio applies "num/den", Console uses the selected console's ratio.
type resizeRequest struct {
	Width   float64 `json:"width,omitempty"`
	Ratio   string  `json:"ratio,omitempty"`
	Console bool    `json:"console,omitempty"`
}

type deviceRequest struct {
	Model       string `json:"model"`
	Orientation string `json:"orientation"`
}

// New returns the router. In debug mode the pprof handlers are registered
// under /debug/pprof.
func New(client *skinstudio.Client, debugMode bool) *gin.Engine {
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if debugMode {
		router.Use(gin.Logger())
		pprof.Register(router)
	}

	h := &handlers{client: client}
	api := router.Group("/api")
	{
		api.POST("/init", h.start)
		api.GET("/config", h.current)
		api.PATCH("/config", h.patchConfig)
		api.GET("/export", h.export)
		api.PUT("/device", h.setDevice)

		api.GET("/controls", h.listControls)
		api.POST("/controls", h.addControl)
		api.PUT("/controls/:id", h.updateControl)
		api.DELETE("/controls/:id", h.deleteControl)
		api.POST("/controls/:id/move", h.moveControl)

		api.GET("/screens", h.listScreens)
		api.POST("/screens", h.addScreen)
		api.PUT("/screens/:index", h.updateScreen)
		api.DELETE("/screens/:index", h.deleteScreen)
		api.POST("/screens/:index/move", h.moveScreen)
		api.POST("/screens/:index/resize", h.resizeScreen)

		api.GET("/reference/buttons", h.buttons)
		api.GET("/log", h.log)
	}
	return router
}

type handlers struct {
	client *skinstudio.Client
}

func (h *handlers) start(c *gin.Context) {
	doc, err := h.client.Init(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": doc, "warnings": h.client.Warnings()})
}

func (h *handlers) current(c *gin.Context) {
	doc, err := h.client.Current()
	if err != nil {
		fail(c, err)
		return
	}
	if doc == nil {
		fail(c, skinstudio.ErrNotInitialized)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *handlers) patchConfig(c *gin.Context) {
	var patch skinstudio.Patch
	if !bind(c, &patch) {
		return
	}
	doc, err := h.client.Merge(patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *handlers) export(c *gin.Context) {
	data, err := h.client.ExportJSON()
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *handlers) setDevice(c *gin.Context) {
	var req deviceRequest
	if !bind(c, &req) {
		return
	}
	o, err := geometry.ParseOrientation(req.Orientation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size, err := h.client.SetDevice(c.Request.Context(), req.Model, o)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappingSize": size})
}

func (h *handlers) listControls(c *gin.Context) {
	items, err := h.client.Controls()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) addControl(c *gin.Context) {
	spec, ok := bindControl(c)
	if !ok {
		return
	}
	item, att, err := h.client.AddControl(spec)
	if err != nil {
		fail(c, err)
		return
	}
	h.respondControl(c, http.StatusCreated, item.ID, att)
}

func (h *handlers) updateControl(c *gin.Context) {
	spec, ok := bindControl(c)
	if !ok {
		return
	}
	item, att, err := h.client.UpdateControl(c.Param("id"), spec)
	if err != nil {
		fail(c, err)
		return
	}
	h.respondControl(c, http.StatusOK, item.ID, att)
}

// respondControl waits for any thumbstick artwork and replies with the
// stored control. A failed attach leaves the control in place and is
// reported next to it.
func (h *handlers) respondControl(c *gin.Context, status int, id string, att *skinstudio.Attachment) {
	attachErr := att.Wait(c.Request.Context())
	item, err := h.client.Control(id)
	if err != nil {
		fail(c, err)
		return
	}
	body := gin.H{"control": item}
	if attachErr != nil {
		body["attachError"] = attachErr.Error()
	}
	c.JSON(status, body)
}

func (h *handlers) deleteControl(c *gin.Context) {
	if err := h.client.DeleteControl(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) moveControl(c *gin.Context) {
	var p skinstudio.Point
	if !bind(c, &p) {
		return
	}
	item, err := h.client.MoveControl(c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) listScreens(c *gin.Context) {
	list, err := h.client.Screens()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) addScreen(c *gin.Context) {
	var req screenRequest
	if !bind(c, &req) {
		return
	}
	index, item, err := h.client.AddScreen(req.InputFrame, req.OutputFrame)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"index": index, "screen": item})
}

func (h *handlers) updateScreen(c *gin.Context) {
	index, ok := screenIndex(c)
	if !ok {
		return
	}
	var req screenRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.client.UpdateScreen(index, req.InputFrame, req.OutputFrame)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) deleteScreen(c *gin.Context) {
	index, ok := screenIndex(c)
	if !ok {
		return
	}
	if err := h.client.DeleteScreen(index); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) moveScreen(c *gin.Context) {
	index, ok := screenIndex(c)
	if !ok {
		return
	}
	var p skinstudio.Point
	if !bind(c, &p) {
		return
	}
	item, err := h.client.MoveScreen(index, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) resizeScreen(c *gin.Context) {
	index, ok := screenIndex(c)
	if !ok {
		return
	}
	var req resizeRequest
	if !bind(c, &req) {
		return
	}

	var (
		item skinstudio.ScreenItem
		err  error
	)
	switch {
	case req.Width != 0:
		item, err = h.client.ResizeScreenToWidth(index, req.Width)
	case req.Ratio != "":
		item, err = h.client.ResizeScreenToRatio(index, req.Ratio)
	case req.Console:
		item, err = h.client.ResizeScreenToConsole(c.Request.Context(), index)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of 'width', 'ratio' or 'console' is required"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) buttons(c *gin.Context) {
	opts, err := h.client.ButtonTypes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if opts == nil {
		opts = []skinstudio.ButtonOption{}
	}
	c.JSON(http.StatusOK, opts)
}

func (h *handlers) log(c *gin.Context) {
	entries := h.client.Log()
	if entries == nil {
		entries = []skinstudio.LogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func bindControl(c *gin.Context) (skinstudio.ControlSpec, bool) {
	var req controlRequest
	if !bind(c, &req) {
		return skinstudio.ControlSpec{}, false
	}
	spec := skinstudio.ControlSpec{Type: req.Type, Frame: req.Frame, Edges: req.ExtendedEdges}
	if req.Thumbstick != nil && req.Thumbstick.Data != "" {
		data, err := base64.StdEncoding.DecodeString(req.Thumbstick.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("thumbstick data: %v", err)})
			return skinstudio.ControlSpec{}, false
		}
		spec.Image = &skinstudio.Image{
			Name:   req.Thumbstick.Name,
			Reader: bytes.NewReader(data),
			Width:  req.Thumbstick.Width,
			Height: req.Thumbstick.Height,
		}
	}
	return spec, true
}

func screenIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid screen index '%s'", c.Param("index"))})
		return 0, false
	}
	return index, true
}

// fail maps domain errors onto status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, skinstudio.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, skinstudio.ErrNotInitialized):
		status = http.StatusConflict
	case errors.Is(err, skinstudio.ErrMissingType),
		errors.Is(err, skinstudio.ErrInvalidDimensions),
		errors.Is(err, skinstudio.ErrInvalidRatio),
		errors.Is(err, skinstudio.ErrRatioNotFound),
		errors.Is(err, skinstudio.ErrUnknownDevice):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
