package protocol

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Schema returns the JSON Schema of every message payload, keyed by message
// type, for embedders validating traffic at the transport boundary.
func Schema() json.RawMessage {
	reflector := jsonschema.Reflector{DoNotReference: true}

	schemas := map[string]any{
		MsgScanSourcePage:      pair(reflector, ScanSourcePageRequest{}, ScanSourcePageResponse{}),
		MsgRegisterVideoSource: pair(reflector, RegisterVideoSourceRequest{}, RegisterVideoSourceResponse{}),
		MsgGetVideoSource:      pair(reflector, GetVideoSourceRequest{}, GetVideoSourceResponse{}),
		MsgFindRelatedEpisodes: pair(reflector, FindRelatedEpisodesRequest{}, FindRelatedEpisodesResponse{}),
		MsgScanForEpisodes:     pair(reflector, ScanForEpisodesRequest{}, ScanForEpisodesResponse{}),
		MsgTabQuery:            pair(reflector, nil, TabQueryResponse{}),
		MsgTabGet:              pair(reflector, TabGetRequest{}, TabGetResponse{}),
		MsgTabSend:             pair(reflector, TabSendRequest{}, TabSendResponse{}),
		MsgInjectDetector:      pair(reflector, InjectDetectorRequest{}, InjectDetectorResponse{}),
	}

	return lo.Must(json.MarshalIndent(schemas, "", "  "))
}

func pair(reflector jsonschema.Reflector, request, response any) map[string]*jsonschema.Schema {
	entry := make(map[string]*jsonschema.Schema, 2)
	if request != nil {
		entry["request"] = reflector.Reflect(request)
	}
	entry["response"] = reflector.Reflect(response)
	return entry
}
