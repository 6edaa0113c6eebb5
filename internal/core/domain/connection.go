package domain

// Connection represents a Microsoft Graph external connection: the
// host-managed container that holds the indexed Project Portal items.
// Created once by the provisioning step and immutable thereafter.
type Connection struct {
	// ID uniquely identifies the connection within the tenant.
	ID string `json:"id"`

	// Name is the human-readable connection name shown in the admin centre.
	Name string `json:"name"`

	// Description explains what the connection indexes.
	Description string `json:"description"`

	// State is reported by the host ("draft", "ready", ...).
	// Empty on create requests.
	State string `json:"state,omitempty"`
}
