// Package inputs loads entity batches from JSON or YAML documents.
package inputs

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// StdinPath is the path that reads the document from standard input.
const StdinPath = "-"

// Envelope keys for object-form documents.
const (
	leadsKey = "leads"
	dealsKey = "deals"
)

// Stdin is the reader used for StdinPath. Tests may replace it.
var Stdin io.Reader = os.Stdin

// LoadDormantLeads reads dormant leads from path.
func LoadDormantLeads(path string) ([]schema.DormantLead, error) {
	return load[schema.DormantLead](path, leadsKey)
}

// LoadInboundLeads reads inbound leads from path.
func LoadInboundLeads(path string) ([]schema.InboundLead, error) {
	return load[schema.InboundLead](path, leadsKey)
}

// LoadLostDeals reads lost deals from path.
func LoadLostDeals(path string) ([]schema.LostDeal, error) {
	return load[schema.LostDeal](path, dealsKey)
}

// DecodeDormantLeads decodes dormant leads from a document.
func DecodeDormantLeads(data []byte) ([]schema.DormantLead, error) {
	return Decode[schema.DormantLead](data, leadsKey)
}

// DecodeInboundLeads decodes inbound leads from a document.
func DecodeInboundLeads(data []byte) ([]schema.InboundLead, error) {
	return Decode[schema.InboundLead](data, leadsKey)
}

// DecodeLostDeals decodes lost deals from a document.
func DecodeLostDeals(data []byte) ([]schema.LostDeal, error) {
	return Decode[schema.LostDeal](data, dealsKey)
}

// ReadDocument returns the raw bytes at path, or standard input for "-".
func ReadDocument(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, eris.New("an input file or '-' for stdin is required")
	}
	if path == StdinPath {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return nil, eris.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}

func load[T any](path, key string) ([]T, error) {
	data, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	entities, err := Decode[T](data, key)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to decode %s", path)
	}
	return entities, nil
}

// Decode accepts a list of entities, an object holding the list under key,
// or a single entity object. YAML documents are normalized to JSON first so
// the json field names are the only naming contract.
func Decode[T any](data []byte, key string) ([]T, error) {
	doc, err := toJSON(data)
	if err != nil {
		return nil, err
	}

	switch doc[0] {
	case '[':
		var entities []T
		if err := json.Unmarshal(doc, &entities); err != nil {
			return nil, eris.Wrap(err, "invalid entity list")
		}
		return entities, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(doc, &envelope); err != nil {
			return nil, eris.Wrap(err, "invalid document")
		}
		if list, ok := envelope[key]; ok {
			var entities []T
			if err := json.Unmarshal(list, &entities); err != nil {
				return nil, eris.Wrapf(err, "invalid %q list", key)
			}
			return entities, nil
		}
		var entity T
		if err := json.Unmarshal(doc, &entity); err != nil {
			return nil, eris.Wrap(err, "invalid entity")
		}
		return []T{entity}, nil
	default:
		return nil, eris.Errorf("expected a list or an object with %q", key)
	}
}

// toJSON returns data as a trimmed JSON document, converting YAML when needed.
func toJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, eris.New("input document is empty")
	}
	if json.Valid(trimmed) {
		return trimmed, nil
	}

	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, eris.Wrap(err, "input is neither JSON nor YAML")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "YAML document cannot be represented as JSON")
	}
	out = bytes.TrimSpace(out)
	if len(out) == 0 || (out[0] != '[' && out[0] != '{') {
		return nil, eris.New("expected a list or an object")
	}
	return out, nil
}
