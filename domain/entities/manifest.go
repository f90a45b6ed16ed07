package entities

import "encoding/json"

// Manifest describes the plugin to the host at registration time.
type Manifest struct {
	// ConfigSchema is the JSON schema of the plugin configuration record.
	ConfigSchema json.RawMessage `json:"config_schema,omitempty"`

	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Description string      `json:"description,omitempty"`
	Commands    []Signature `json:"commands"`
}
