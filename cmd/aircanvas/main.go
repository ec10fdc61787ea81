package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/renderix/aircanvas/internal/app"
	"github.com/renderix/aircanvas/internal/server"
	"github.com/renderix/aircanvas/internal/store"
	"github.com/renderix/aircanvas/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	headless := flag.Bool("headless", false, "run without the display window and tray")
	flag.Parse()

	fmt.Println("Air Canvas - Hand Gesture Drawing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".aircanvas")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "aircanvas.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The -camera flag wins; otherwise fall back to the stored camera ID.
	camera := *cameraID
	if camera == 0 {
		if v, err := st.Settings().Get(store.SettingCameraID); err == nil {
			if id, err := strconv.Atoi(v); err == nil {
				camera = id
			}
		}
	}

	application := app.New(app.Config{
		Store:    st,
		CameraID: camera,
		Headless: *headless,
	})
	if err := application.LoadCalibration(); err != nil {
		log.Printf("Failed to load calibration: %v", err)
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Session:   application,
	})
	defer srv.Close()

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer application.Stop()

	if *headless {
		waitForSignal()
		return
	}

	t := tray.New()
	t.OnToggle(application.SetEnabled)
	t.OnSettings(func() {
		log.Printf("Canvas available at http://localhost%s", *addr)
	})
	application.OnGesture(t.SetLastGesture)

	// Blocks until Quit is selected from the tray menu.
	t.Run()
}

// waitForSignal blocks until the process receives an interrupt.
func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.aircanvas/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".aircanvas", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
