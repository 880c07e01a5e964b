package model

// ConnectionStatus represents the state of a remote connection check
type ConnectionStatus string

const (
	// StatusIdle - no connection attempt has been made yet
	StatusIdle ConnectionStatus = "Idle"
	// StatusConnecting - connection attempt is in progress
	StatusConnecting ConnectionStatus = "Connecting"
	// StatusConnected - last connection attempt succeeded
	StatusConnected ConnectionStatus = "Connected"
	// StatusFailed - last connection attempt failed
	StatusFailed ConnectionStatus = "Failed"
)

// String returns the string representation of the status
func (cs ConnectionStatus) String() string {
	return string(cs)
}

// IsActive returns true if a connection attempt is currently running
func (cs ConnectionStatus) IsActive() bool {
	return cs == StatusConnecting
}

// IsSettled returns true if the status is a final outcome
func (cs ConnectionStatus) IsSettled() bool {
	return cs == StatusConnected || cs == StatusFailed
}
