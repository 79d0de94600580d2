package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/pulse/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	retryDelay        = constants.NotifyRetryDelay
)

var ErrTrayNotRunning = errors.New("pulse-tray is not running")

// Tray posts alerts to the desktop tray companion. The tray app publishes
// "port|pid|secret" in a lockfile; the pid must belong to a live pulse-tray
// process before anything is sent.
type Tray struct {
	client *http.Client
}

type trayPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func NewTray() *Tray {
	return &Tray{client: &http.Client{Timeout: 2 * time.Second}}
}

func (t *Tray) Notify(title, body string) error {
	dir, err := TrayConfigDir()
	if err != nil {
		return err
	}
	ep, err := readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	text := title
	if body != "" {
		text += "\n" + body
	}
	payload := trayPayload{Text: text, DurationMs: constants.NotificationDuration}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}
		if lastErr = t.send(ep, payload); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("tray notification failed after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// TrayConfigDir is where the tray app keeps its lockfile, honoring a
// lockfile_dir override in the tray's settings.json.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayDir, "settings.json"))
	if err != nil {
		return trayDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(data, &store) == nil && store.Settings.LockfileDir != "" {
		return store.Settings.LockfileDir, nil
	}
	return trayDir, nil
}

type trayEndpoint struct {
	port   int
	secret string
}

func readLockfile(path string) (trayEndpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, errors.New("tray lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return trayEndpoint{}, errors.New("invalid port in tray lockfile")
	}
	if port < 1 || port > 65535 {
		return trayEndpoint{}, fmt.Errorf("tray port %d is outside 1-65535", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return trayEndpoint{}, errors.New("invalid pid in tray lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayEndpoint{}, errors.New("secret in tray lockfile is empty")
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return trayEndpoint{}, fmt.Errorf("process %d is not pulse-tray (is %s)", pid, proc.Executable())
	}
	return trayEndpoint{port: port, secret: secret}, nil
}

func (t *Tray) send(ep trayEndpoint, payload trayPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://127.0.0.1:%d", ep.port), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Pulse-Secret", ep.secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("tray returned status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
