// Package core is the background dispatcher: it owns the source registry and
// the scan orchestrator, and routes every UI-originated message to the module
// that answers it.
package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/episodic-ext/episodic/browser"
	"github.com/episodic-ext/episodic/log"
	"github.com/episodic-ext/episodic/protocol"
	"github.com/episodic-ext/episodic/registry"
	"github.com/episodic-ext/episodic/related"
	"github.com/episodic-ext/episodic/scan"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Core holds the process-lifetime state of the background side: the video
// source registry and the scanner driving the browser host.
type Core struct {
	registry *registry.Registry
	scanner  *scan.Scanner
}

// New wires a core over the given browser host.
func New(host browser.Host) *Core {
	reg := registry.New()
	return &Core{
		registry: reg,
		scanner:  scan.New(reg, host),
	}
}

// Registry exposes the source registry for callers that register discoveries
// directly, such as the CLI.
func (c *Core) Registry() *registry.Registry {
	return c.registry
}

// Handle routes one UI-originated request and returns its response payload.
// Malformed payloads and unknown types resolve to an ErrorResponse; no request
// is ever left unanswered.
func (c *Core) Handle(ctx context.Context, env protocol.Envelope) any {
	log.Debugf("core: handling %s request %d", env.Type, env.ID)

	switch env.Type {
	case protocol.MsgScanSourcePage:
		var req protocol.ScanSourcePageRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return decodeError(env.Type, err)
		}
		return c.scanner.ScanSourcePage(ctx, req.VideoURL)

	case protocol.MsgRegisterVideoSource:
		var req protocol.RegisterVideoSourceRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return decodeError(env.Type, err)
		}
		return c.registerVideoSource(req)

	case protocol.MsgGetVideoSource:
		var req protocol.GetVideoSourceRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return decodeError(env.Type, err)
		}
		return c.getVideoSource(req)

	case protocol.MsgFindRelatedEpisodes:
		var req protocol.FindRelatedEpisodesRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return decodeError(env.Type, err)
		}
		return c.findRelatedEpisodes(req)

	default:
		log.Infof("core: unknown request type %q", env.Type)
		return protocol.ErrorResponse{Error: fmt.Sprintf("unknown request type %q", env.Type)}
	}
}

func (c *Core) registerVideoSource(req protocol.RegisterVideoSourceRequest) protocol.RegisterVideoSourceResponse {
	tabID := mo.None[int]()
	if req.SourceTabID != nil {
		tabID = mo.Some(*req.SourceTabID)
	}

	c.registry.Register(req.VideoURL, req.SourceURL, tabID)
	return protocol.RegisterVideoSourceResponse{Success: true}
}

func (c *Core) getVideoSource(req protocol.GetVideoSourceRequest) protocol.GetVideoSourceResponse {
	record, ok := c.registry.Lookup(req.VideoURL).Get()
	if !ok {
		return protocol.GetVideoSourceResponse{
			Error: "No source registered for this video",
		}
	}

	return protocol.GetVideoSourceResponse{
		Success:     true,
		SourceURL:   record.SourceURL,
		SourceTabID: record.SourceTabID.ToPointer(),
		Timestamp:   record.RegisteredAt.UnixMilli(),
	}
}

func (c *Core) findRelatedEpisodes(req protocol.FindRelatedEpisodesRequest) protocol.FindRelatedEpisodesResponse {
	direction, ok := related.ParseDirection(req.Direction)
	if !ok {
		return protocol.FindRelatedEpisodesResponse{
			Error: fmt.Sprintf("unknown direction %q", req.Direction),
		}
	}

	episodes := related.Find(req.CurrentURL, req.CandidateURLs, direction)
	return protocol.FindRelatedEpisodesResponse{
		Success:  true,
		Episodes: lo.Must(json.Marshal(episodes)),
	}
}

func decodeError(msgType string, err error) protocol.ErrorResponse {
	log.Errorf("core: malformed %s payload: %v", msgType, err)
	return protocol.ErrorResponse{Error: fmt.Sprintf("malformed %s payload: %v", msgType, err)}
}
