package render

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// openCommand builds the command that opens path in the platform image viewer.
var openCommand = func(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// ShowChart opens a rendered chart with the platform viewer and returns without waiting for it.
func ShowChart(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot show chart: %w", err)
	}
	cmd := openCommand(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", path, cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
