package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bianoble/skin-studio/pkg/skinstudio"
)

// newClient opens the project settings and snapshot.
func newClient() (*skinstudio.Client, error) {
	opts := skinstudio.Options{
		ConfigPath: configPath,
		StatePath:  statePath,
		Debug:      verbose,
	}
	if verbose {
		opts.LogOutput = os.Stderr
	}
	client, err := skinstudio.New(opts)
	if err != nil {
		return nil, fmt.Errorf("loading settings %s: %w", configPath, err)
	}
	return client, nil
}

// reportWarnings prints degraded-load warnings unless quiet.
func reportWarnings(client *skinstudio.Client) {
	for _, w := range client.Warnings() {
		if !verbose {
			info("warning: %s", w.Msg)
		}
	}
}

// parseNumbers parses a comma-separated list of exactly n numbers.
func parseNumbers(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("'%s': expected %d comma-separated numbers", s, n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseFrame parses "x,y,width,height".
func parseFrame(s string) (skinstudio.Frame, error) {
	v, err := parseNumbers(s, 4)
	if err != nil {
		return skinstudio.Frame{}, fmt.Errorf("frame %w", err)
	}
	return skinstudio.Frame{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// parseEdges parses a single uniform value or "top,bottom,left,right".
func parseEdges(s string) (skinstudio.Edges, error) {
	if s == "" {
		return skinstudio.Edges{}, nil
	}
	if !strings.Contains(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return skinstudio.Edges{}, fmt.Errorf("edges '%s': %w", s, err)
		}
		return skinstudio.Edges{Top: v, Bottom: v, Left: v, Right: v}, nil
	}
	v, err := parseNumbers(s, 4)
	if err != nil {
		return skinstudio.Edges{}, fmt.Errorf("edges %w", err)
	}
	return skinstudio.Edges{Top: v[0], Bottom: v[1], Left: v[2], Right: v[3]}, nil
}

// parsePoint parses x and y arguments.
func parsePoint(xs, ys string) (skinstudio.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return skinstudio.Point{}, fmt.Errorf("x '%s': %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return skinstudio.Point{}, fmt.Errorf("y '%s': %w", ys, err)
	}
	return skinstudio.Point{X: x, Y: y}, nil
}

// formatFrame renders a frame for table output.
func formatFrame(f skinstudio.Frame) string {
	return fmt.Sprintf("%g,%g %gx%g", f.X, f.Y, f.Width, f.Height)
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
