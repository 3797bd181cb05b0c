package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/tabnews-cli/tn/internal/debuglog"
)

// Launcher opens content URLs in the system browser.
type Launcher struct {
	opener string
}

// NewLauncher builds a launcher; opener overrides the platform default when
// non-empty.
func NewLauncher(opener string) *Launcher {
	if opener == "" {
		opener = defaultOpener()
	}
	return &Launcher{opener: opener}
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "cmd"
	default:
		return "xdg-open"
	}
}

// Open launches the URL without waiting for the browser to exit.
func (l *Launcher) Open(url string) error {
	var cmd *exec.Cmd
	if l.opener == "cmd" {
		cmd = exec.Command("cmd", "/c", "start", "", url)
	} else {
		cmd = exec.Command(l.opener, url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", l.opener, err)
	}

	debuglog.Debugf("opened %s via %s", url, l.opener)

	// Reap the child in the background so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
