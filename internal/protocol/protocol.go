// Package protocol defines the request/response envelope spoken between the
// clipkeep CLI sub-commands and a running watch daemon.
//
// Every message is a single line of JSON. Entries cross the socket as
// lightweight descriptors (id, label, kind, timestamp, pin state); the
// payload itself never leaves the daemon — a COPY request makes the daemon
// write the pasteboard directly.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Op identifies a request kind.
type Op string

const (
	OpList        Op = "LIST"
	OpCopy        Op = "COPY"
	OpPin         Op = "PIN"
	OpDelete      Op = "DELETE"
	OpClear       Op = "CLEAR"
	OpPrune       Op = "PRUNE"
	OpGetSettings Op = "GET_SETTINGS"
	OpSetSettings Op = "SET_SETTINGS"
	OpStatus      Op = "STATUS"
)

// Setting names accepted by SET_SETTINGS.
const (
	SettingMaxHistoryLength = "maxHistoryLength"
	SettingAutoDeleteDays   = "autoDeleteDays"
	SettingAutoDeleteCount  = "autoDeleteCount"
)

// Request is what a CLI sub-command sends to the daemon.
type Request struct {
	Op Op `json:"op"`

	// LIST
	Query string `json:"query,omitempty"`

	// COPY / PIN / DELETE — the entry handle from a prior LIST
	ID string `json:"id,omitempty"`

	// SET_SETTINGS
	Setting string `json:"setting,omitempty"`
	Value   int    `json:"value,omitempty"`
}

// EntryInfo describes one history entry without carrying its payload.
type EntryInfo struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Pinned    bool      `json:"pinned"`
}

// SettingsInfo mirrors the persisted settings.
type SettingsInfo struct {
	MaxHistoryLength int `json:"maxHistoryLength"`
	AutoDeleteDays   int `json:"autoDeleteDays"`
	AutoDeleteCount  int `json:"autoDeleteCount"`
}

// StatusInfo is the STATUS reply body.
type StatusInfo struct {
	Source    string    `json:"source"`
	Entries   int       `json:"entries"`
	Pinned    int       `json:"pinned"`
	StartedAt time.Time `json:"started_at"`
}

// Response is the daemon's reply. OK is false only when Error is set.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Entries  []EntryInfo   `json:"entries,omitempty"`
	Settings *SettingsInfo `json:"settings,omitempty"`
	Status   *StatusInfo   `json:"status,omitempty"`
}

// Errorf builds an error response.
func Errorf(format string, args ...any) Response {
	return Response{Error: fmt.Sprintf(format, args...)}
}

// OKResponse is the bare success reply.
func OKResponse() Response { return Response{OK: true} }

// Encode serialises a message to JSON without a trailing newline.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeRequest deserialises a request line.
func DecodeRequest(b []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("request decode: %w", err)
	}
	return &r, nil
}

// DecodeResponse deserialises a response line.
func DecodeResponse(b []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("response decode: %w", err)
	}
	return &r, nil
}
