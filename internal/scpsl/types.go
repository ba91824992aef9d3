package scpsl

import (
	"bytes"
	"encoding/json"
)

// Response is the top-level payload of the serverinfo endpoint.
// Servers stays raw so that one malformed entry never poisons the
// whole response; entries are decoded one by one with DecodeServer.
type Response struct {
	Servers []json.RawMessage `json:"Servers"`
	Success bool              `json:"Success"`
}

// Server is one server entry as returned by the status API.
// Every field is optional; ID and Port tolerate both string and
// number encodings.
type Server struct {
	ID          Value    `json:"ID"`
	Port        Value    `json:"Port"`
	Info        string   `json:"Info"`
	LastOnline  string   `json:"LastOnline"`
	Version     string   `json:"Version"`
	Players     string   `json:"Players"`
	PlayersList []Player `json:"PlayersList"`
	Online      bool     `json:"Online"`
	FF          bool     `json:"FF"`
	WL          bool     `json:"WL"`
	Modded      bool     `json:"Modded"`
}

// Player is one roster entry of an online server.
type Player struct {
	ID       string `json:"ID"`
	Nickname string `json:"nickname"`
}

// Value is a scalar field the API serves either as a JSON string or as
// a number. It always reads back as its text form.
type Value string

// UnmarshalJSON accepts strings, numbers, and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	*v = Value(data)
	return nil
}

// String returns the text form of the value.
func (v Value) String() string {
	return string(v)
}

// decodeResponse parses the top-level API payload.
func decodeResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DecodeServer parses one entry of the Servers list.
// Non-object entries (the API occasionally mixes in plain strings)
// are reported with ok=false and must be skipped by the caller.
func DecodeServer(raw json.RawMessage) (Server, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Server{}, false
	}

	var srv Server
	if err := json.Unmarshal(trimmed, &srv); err != nil {
		return Server{}, false
	}

	return srv, true
}
