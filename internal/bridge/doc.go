package bridge

// Package bridge routes named commands from the UI to backend
// services. Services register handlers on a Registry; UI code calls
// typed methods on Client and never touches the services directly.
// Arguments and results cross the bridge as JSON, matching what a
// remote frontend would send.
