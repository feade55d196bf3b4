package main

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// resolveChromium picks the browser executable: the configured path when it
// exists, then Chrome/Chromium in PATH or common locations, then a portable
// copy under the user config dir. An empty result lets chromedp use its own
// lookup.
func resolveChromium(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		slog.Warn("Configured Chrome/Chromium not found, searching", "path", configured)
	}
	if p := findChromiumExecutable(); p != "" {
		return p
	}
	return customChromiumPath()
}

// finds and returns the full path to Chrome/Chromium executable, or empty string if not found
func findChromiumExecutable() string {
	// First check PATH
	candidates := []string{"chrome", "chromium", "chrome.exe", "chromium.exe", "google-chrome", "google-chrome-stable", "chromium-browser"}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			slog.Info("Found Chrome/Chromium browser executable in PATH", "path", path)
			return path
		}
	}

	var common []string
	switch runtime.GOOS {
	case "windows":
		common = []string{
			"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
			"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
			"C:\\Program Files\\Chromium\\Application\\chrome.exe",
			"C:\\Program Files (x86)\\Chromium\\Application\\chrome.exe",
		}
	case "darwin":
		common = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	}
	for _, execPath := range common {
		if _, err := os.Stat(execPath); err == nil {
			slog.Info("Found Chrome/Chromium browser executable in common location", "path", execPath)
			return execPath
		}
	}

	slog.Warn("No Chrome/Chromium browser found in PATH or common locations")
	return ""
}

// looks for a portable Chromium in ~/.config/autocheckin/chromium (Linux)
// or C:\Users\yourname\AppData\Roaming\autocheckin\chromium (Windows)
func customChromiumPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	chromiumDir := filepath.Join(configDir, "autocheckin", "chromium")
	var chromiumExe string
	switch runtime.GOOS {
	case "windows":
		chromiumExe = filepath.Join(chromiumDir, "chrome-win", "chrome.exe")
	case "linux":
		chromiumExe = filepath.Join(chromiumDir, "chrome-linux", "chrome")
	default:
		return ""
	}
	if _, err := os.Stat(chromiumExe); err != nil {
		return ""
	}
	slog.Info("Using portable Chromium", "path", chromiumExe)
	return chromiumExe
}
