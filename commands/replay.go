package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mobile-next/touchemu/devices"
	"github.com/mobile-next/touchemu/devices/wda"
	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/overlay"
	"github.com/mobile-next/touchemu/session"
	"github.com/mobile-next/touchemu/touch"
	"howett.net/plist"
)

// TraceElement declares an element the samples of a trace refer to.
type TraceElement struct {
	ID     string `json:"id" plist:"id"`
	Tag    string `json:"tag" plist:"tag"`
	Parent string `json:"parent,omitempty" plist:"parent,omitempty"`
}

// Trace is a recorded mouse session.
type Trace struct {
	Elements []TraceElement   `json:"elements" plist:"elements"`
	Samples  []session.Sample `json:"samples" plist:"samples"`
}

// ReplayRequest represents the parameters for a replay command
type ReplayRequest struct {
	TracePath string
	Config    emulator.Config
	// WDAAddress, when set, also performs the gestures on a device
	WDAAddress string
}

// ReplayResponse lists every touch event a trace produced
type ReplayResponse struct {
	Samples int               `json:"samples"`
	Events  []*touch.Event    `json:"events"`
	State   emulator.Snapshot `json:"state"`
	Markers []overlay.Marker  `json:"markers,omitempty"`
}

// LoadTrace reads a trace from a .plist file (XML or binary) or from JSON.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	var trace Trace
	if strings.EqualFold(filepath.Ext(path), ".plist") {
		if _, err := plist.Unmarshal(data, &trace); err != nil {
			return nil, fmt.Errorf("failed to parse plist trace: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &trace); err != nil {
			return nil, fmt.Errorf("failed to parse json trace: %w", err)
		}
	}

	return &trace, nil
}

// Replay runs trace through a fresh session.
func Replay(trace *Trace, cfg emulator.Config, opts ...session.Option) (*ReplayResponse, error) {
	sess, err := session.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	for _, el := range trace.Elements {
		if err := sess.CreateElement(el.ID, el.Tag, el.Parent); err != nil {
			return nil, fmt.Errorf("failed to create element %s: %w", el.ID, err)
		}
	}

	resp := &ReplayResponse{Events: []*touch.Event{}}
	for i, sample := range trace.Samples {
		result, err := sess.Mouse(sample)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		resp.Events = append(resp.Events, result.Events...)
		resp.Samples++
	}

	resp.State = sess.State()
	resp.Markers = sess.Markers()
	return resp, nil
}

// ReplayCommand replays a recorded trace file
func ReplayCommand(req ReplayRequest) *CommandResponse {
	if req.TracePath == "" {
		return NewErrorResponse(fmt.Errorf("trace path is required"))
	}

	trace, err := LoadTrace(req.TracePath)
	if err != nil {
		return NewErrorResponse(err)
	}

	var opts []session.Option
	var forwarder *devices.TouchForwarder
	if req.WDAAddress != "" {
		forwarder = devices.NewTouchForwarder(wda.NewWdaClient(req.WDAAddress))
		opts = append(opts, session.WithObserver(forwarder))
		if registry := GetRegistry(); registry != nil {
			registry.Register(req.TracePath, forwarder)
			defer registry.Release(req.TracePath)
		}
	}

	resp, err := Replay(trace, req.Config, opts...)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to replay %s: %w", req.TracePath, err))
	}

	if forwarder != nil {
		forwarder.Wait()
		if err := forwarder.Err(); err != nil {
			return NewErrorResponse(fmt.Errorf("failed to forward gestures to %s: %w", req.WDAAddress, err))
		}
	}

	return NewSuccessResponse(resp)
}
