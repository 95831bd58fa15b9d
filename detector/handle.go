package detector

import (
	"encoding/json"
	"fmt"

	"github.com/episodic-ext/episodic/protocol"
)

// Handle routes a page-directed message to the matching query and returns its
// JSON-serializable result. It backs any context hosting the detector, from
// the injected page script to test fakes.
func (d *Detector) Handle(env protocol.Envelope) (any, error) {
	switch env.Type {
	case protocol.MsgScanForEpisodes:
		var req protocol.ScanForEpisodesRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return d.ScanForEpisodes(req.CurrentURL), nil

	case protocol.MsgGetVideoLinks:
		return d.VideoLinks(), nil

	case protocol.MsgGetVideoLinksWithInfo:
		return d.VideoLinksWithInfo(), nil

	case protocol.MsgGetPageInfo:
		return d.PageInfo(false), nil

	case protocol.MsgGetPageInfoDetailed:
		return d.PageInfo(true), nil

	default:
		return nil, fmt.Errorf("unknown page message type %q", env.Type)
	}
}
