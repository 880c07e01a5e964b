package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the command bridge and renders the notes editor,
// backup settings, WebDAV restore browsing, the status bar and the system tray.
// All UI strings are localized via Localization; privileged work (database,
// archives, network) stays behind the bridge client.
