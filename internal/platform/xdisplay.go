package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/displaykit/internal/logging"
)

const x11SocketDir = "/tmp/.X11-unix"

var (
	runCommandOutputFn        = runCommandOutput
	readFileFn                = os.ReadFile
	readDirFn                 = os.ReadDir
	getenvFn                  = os.Getenv
	detectSessionX11EnvFn     = detectSessionX11Env
	detectDisplayFromSocketFn = detectDisplayFromSockets
)

// x11Env is the connection environment for an X11 probe.
type x11Env struct {
	Display    string
	XAuthority string
}

// resolveX11Env picks the X display to connect to when the process may have
// been started without a GUI environment (from an MCP client, cron, or an
// ssh session). Priority: configured value, $DISPLAY, the user's login
// session, then the highest-numbered local X socket.
func resolveX11Env(configured string) (x11Env, error) {
	display := strings.TrimSpace(configured)
	xauthority := strings.TrimSpace(getenvFn("XAUTHORITY"))

	if display == "" {
		display = strings.TrimSpace(getenvFn("DISPLAY"))
	}
	if display == "" || xauthority == "" {
		detectedDisplay, detectedXAuthority := detectSessionX11EnvFn()
		if display == "" {
			display = strings.TrimSpace(detectedDisplay)
		}
		if xauthority == "" {
			xauthority = strings.TrimSpace(detectedXAuthority)
		}
	}
	if display == "" {
		display = detectDisplayFromSocketFn(x11SocketDir)
	}
	if display == "" {
		return x11Env{}, fmt.Errorf("no X display found; set display in config (e.g. display: \":0\") or export DISPLAY")
	}

	if xauthority == "" {
		home := strings.TrimSpace(getenvFn("HOME"))
		if home == "" {
			if detectedHome, err := os.UserHomeDir(); err == nil {
				home = detectedHome
			}
		}
		if home != "" {
			candidate := filepath.Join(home, ".Xauthority")
			if _, err := os.Stat(candidate); err == nil {
				xauthority = candidate
			}
		}
	}

	return x11Env{Display: display, XAuthority: xauthority}, nil
}

// apply exports XAUTHORITY for the X client library when the
// environment lacks it.
func (e x11Env) apply() {
	if e.XAuthority == "" || os.Getenv("XAUTHORITY") != "" {
		return
	}
	if err := os.Setenv("XAUTHORITY", e.XAuthority); err != nil {
		logger().Debug("failed to export XAUTHORITY", logging.KeyError, err)
	}
}

func runCommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectSessionX11Env() (display string, xauthority string) {
	uid := strconv.Itoa(os.Getuid())
	out, err := runCommandOutputFn("loginctl", "list-sessions", "--no-legend")
	if err != nil {
		return "", ""
	}
	for _, sessionID := range parseLoginctlSessions(out, uid) {
		d := strings.TrimSpace(loginctlShowSessionProp(sessionID, "Display"))
		if d == "" || strings.EqualFold(d, "n/a") {
			continue
		}

		xauth := ""
		leader := strings.TrimSpace(loginctlShowSessionProp(sessionID, "Leader"))
		if leader != "" && leader != "0" {
			if envMap, err := readProcEnviron(leader); err == nil {
				if ed := strings.TrimSpace(envMap["DISPLAY"]); ed != "" {
					d = ed
				}
				xauth = strings.TrimSpace(envMap["XAUTHORITY"])
			}
		}
		return d, xauth
	}
	return "", ""
}

func parseLoginctlSessions(output string, uid string) []string {
	var sessions []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 {
			continue
		}
		if fields[1] == uid {
			sessions = append(sessions, fields[0])
		}
	}
	return sessions
}

func loginctlShowSessionProp(sessionID string, prop string) string {
	out, err := runCommandOutputFn("loginctl", "show-session", sessionID, "-p", prop, "--value")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func readProcEnviron(pid string) (map[string]string, error) {
	data, err := readFileFn(filepath.Join("/proc", pid, "environ"))
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, part := range strings.Split(string(data), "\x00") {
		k, v, ok := strings.Cut(part, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env, nil
}

func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		displays = append(displays, n)
	}

	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}
