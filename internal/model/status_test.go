package model

import "testing"

func TestConnectionStatus_String(t *testing.T) {
	tests := []struct {
		status   ConnectionStatus
		expected string
	}{
		{StatusIdle, "Idle"},
		{StatusConnecting, "Connecting"},
		{StatusConnected, "Connected"},
		{StatusFailed, "Failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("ConnectionStatus.String() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestConnectionStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   ConnectionStatus
		expected bool
	}{
		{StatusIdle, false},
		{StatusConnecting, true},
		{StatusConnected, false},
		{StatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsActive(); got != tt.expected {
				t.Errorf("ConnectionStatus.IsActive() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestConnectionStatus_IsSettled(t *testing.T) {
	tests := []struct {
		status   ConnectionStatus
		expected bool
	}{
		{StatusIdle, false},
		{StatusConnecting, false},
		{StatusConnected, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsSettled(); got != tt.expected {
				t.Errorf("ConnectionStatus.IsSettled() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
