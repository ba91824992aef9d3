// Package models defines the data structures shared between the storage,
// dispatch, and command layers.
package models

// Binding associates one SCP:SL server account with one chat group.
// Port is optional: an empty string means the group watches every
// server the account exposes.
type Binding struct {
	ServerKey string `json:"server_key"`
	AccountID string `json:"account_id"`
	Port      string `json:"port,omitempty"`
}

// Identity returns the pair used for add/remove/check matching.
// The stored port is informational and never part of the identity.
func (b Binding) Identity() (string, string) {
	return b.ServerKey, b.AccountID
}

// Same reports whether two bindings refer to the same server account,
// ignoring the port.
func (b Binding) Same(key, accountID string) bool {
	return b.ServerKey == key && b.AccountID == accountID
}

// CommandRequest represents one chat command delivered by the bot platform.
type CommandRequest struct {
	Command     string `json:"command"`
	Params      string `json:"params"`
	UserID      string `json:"user_id"`
	GroupOpenID string `json:"group_openid"`
}

// CommandResponse carries the reply text back to the bot platform.
type CommandResponse struct {
	Reply string `json:"reply"`
}
