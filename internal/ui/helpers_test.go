package ui

import (
	"context"
	"encoding/json"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
)

// recordingInvoker satisfies bridge.Invoker and records every command
// name it receives. Results and errors can be canned per command. The
// window spawns goroutines that invoke commands, so access is locked.
type recordingInvoker struct {
	mu      sync.Mutex
	calls   []string
	results map[string]json.RawMessage
	errs    map[string]error
}

func newRecordingInvoker() *recordingInvoker {
	return &recordingInvoker{
		results: make(map[string]json.RawMessage),
		errs:    make(map[string]error),
	}
}

func (ri *recordingInvoker) Invoke(_ context.Context, name string, _ any) (json.RawMessage, error) {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	ri.calls = append(ri.calls, name)
	if err, ok := ri.errs[name]; ok {
		return nil, err
	}
	if raw, ok := ri.results[name]; ok {
		return raw, nil
	}
	return json.RawMessage("null"), nil
}

func (ri *recordingInvoker) callCount(name string) int {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	n := 0
	for _, call := range ri.calls {
		if call == name {
			n++
		}
	}
	return n
}

// stubSnapshotStore lets tests build a scheduler that is never run
type stubSnapshotStore struct {
	dir string
}

func (s *stubSnapshotStore) Dir() string { return s.dir }

func (s *stubSnapshotStore) SnapshotTo(_ context.Context, destDir string) (string, error) {
	return destDir, nil
}

func (s *stubSnapshotStore) Close() error { return nil }

func (s *stubSnapshotStore) Reopen() error { return nil }

// testHarness bundles the collaborators every window component needs
type testHarness struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	client       *bridge.Client
	bus          *event.Bus
	invoker      *recordingInvoker
}

func newTestHarness() *testHarness {
	app := test.NewApp()
	invoker := newRecordingInvoker()

	return &testHarness{
		app:          app,
		window:       app.NewWindow("test"),
		settings:     config.NewSettings(app),
		localization: NewLocalization(),
		client:       bridge.NewClient(invoker),
		bus:          event.NewBus(),
		invoker:      invoker,
	}
}
