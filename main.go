package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/aitoolbox/ai-toolbox/internal/backup"
	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/config"
	"github.com/aitoolbox/ai-toolbox/internal/event"
	"github.com/aitoolbox/ai-toolbox/internal/notes"
	"github.com/aitoolbox/ai-toolbox/internal/platform"
	"github.com/aitoolbox/ai-toolbox/internal/store"
	"github.com/aitoolbox/ai-toolbox/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.aitoolbox.ai-toolbox"
	AppName = "AI Toolbox"
)

func main() {
	// Log version information
	fmt.Printf("AI Toolbox v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply stored theme and language before any window exists
	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.GetTheme()))

	localization := ui.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Open the notes database in the per-user data directory
	dataDir, err := platform.DataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}
	db, err := store.Open(dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Wire services to the command bridge
	bus := event.NewBus()
	registry := bridge.NewRegistry()

	notes.NewService(db).RegisterHandlers(registry)
	backupSvc := backup.NewService(db, bus)
	backupSvc.RegisterHandlers(registry)

	client := bridge.NewClient(registry)
	scheduler := backup.NewScheduler(settings, backupSvc, bus)

	// Create and setup UI
	ui.NewRootUI(myApp, myWindow, settings, localization, client, bus, scheduler)

	// Show and run
	scheduler.Start()
	myWindow.ShowAndRun()
	scheduler.Stop()

	if err := db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
