package models

// Envelope is the uniform result wrapper returned by every tool operation.
// On success the message is descriptive; on failure the payload is absent and
// the message carries the causal reason.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Records []map[string]string `json:"records,omitempty"`
	Record  map[string]string   `json:"record,omitempty"`
}
