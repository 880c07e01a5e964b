package ui

import (
	"testing"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

func TestStatusIndicatorStartsIdle(t *testing.T) {
	h := newTestHarness()

	si := NewStatusIndicator(h.localization)
	if si.Status() != model.StatusIdle {
		t.Errorf("Status() = %v, expected idle", si.Status())
	}
	if si.label.Text != "Idle" {
		t.Errorf("label = %q, expected Idle", si.label.Text)
	}
}

func TestStatusIndicatorSetStatus(t *testing.T) {
	h := newTestHarness()

	tests := []struct {
		status model.ConnectionStatus
		text   string
	}{
		{model.StatusConnecting, "Connecting..."},
		{model.StatusConnected, "Connected"},
		{model.StatusFailed, "Failed"},
		{model.StatusIdle, "Idle"},
	}

	si := NewStatusIndicator(h.localization)
	for _, tt := range tests {
		si.SetStatus(tt.status)
		if si.Status() != tt.status {
			t.Errorf("Status() = %v, expected %v", si.Status(), tt.status)
		}
		if si.label.Text != tt.text {
			t.Errorf("label for %v = %q, expected %q", tt.status, si.label.Text, tt.text)
		}
	}
}

func TestStatusIndicatorRefreshTexts(t *testing.T) {
	h := newTestHarness()

	si := NewStatusIndicator(h.localization)
	si.SetStatus(model.StatusConnected)

	h.localization.SetLanguage("zh")
	si.RefreshTexts()

	if si.label.Text != "已连接" {
		t.Errorf("label after language change = %q", si.label.Text)
	}
}
