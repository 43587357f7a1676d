package chromewindow

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ResolveChromePath resolves the Chrome executable path: an explicit path
// wins, then the CHROME_PATH environment variable, then the system default
// locations (Chromium before Chrome). An empty result means nothing was found.
func ResolveChromePath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if envPath := os.Getenv("CHROME_PATH"); envPath != "" {
		return envPath
	}
	return findSystemChrome()
}

func findSystemChrome() string {
	for _, candidate := range systemCandidates() {
		if path := resolveExecutable(candidate); path != "" {
			return path
		}
	}
	return ""
}

func systemCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	case "linux":
		return []string{
			"chromium",
			"chromium-browser",
			"google-chrome-stable",
			"google-chrome",
		}
	case "windows":
		var candidates []string
		for _, env := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "LOCALAPPDATA"} {
			root := os.Getenv(env)
			if root == "" {
				continue
			}
			candidates = append(candidates,
				filepath.Join(root, "Chromium", "Application", "chrome.exe"),
				filepath.Join(root, "Google", "Chrome", "Application", "chrome.exe"),
			)
		}
		return candidates
	}
	return nil
}

// resolveExecutable returns nameOrPath if it is an existing absolute path,
// or its PATH lookup result for a bare command name.
func resolveExecutable(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) {
		if _, err := os.Stat(nameOrPath); err == nil {
			return nameOrPath
		}
		return ""
	}
	if path, err := exec.LookPath(nameOrPath); err == nil {
		return path
	}
	return ""
}
