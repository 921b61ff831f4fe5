// Package hyprctl runs hyprctl to query a running Hyprland compositor.
package hyprctl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	binaryName       = "hyprctl"
	unknownReqOutput = "unknown request"
	signatureEnv     = "HYPRLAND_INSTANCE_SIGNATURE"
)

var (
	ErrUnknownRequest = errors.New(unknownReqOutput)
	ErrNotRunning     = errors.New("hyprland is not running")
)

type Client struct {
	BinaryPath string
}

// Running reports whether the environment belongs to a Hyprland session.
func Running() bool {
	return os.Getenv(signatureEnv) != ""
}

func NewClient() (*Client, error) {
	if !Running() {
		return nil, ErrNotRunning
	}
	bp, err := exec.LookPath(binaryName)
	if err != nil {
		return nil, fmt.Errorf("finding full hyprctl binary path: %w", err)
	}

	return &Client{
		BinaryPath: bp,
	}, nil
}

func (c *Client) RunCommandWithUnmarshal(args []string, v any) error {
	a := append([]string{"-j"}, args...)
	out, err := c.RunCommand(a)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func (c *Client) RunCommand(args []string) ([]byte, error) {
	cmd := exec.Command(c.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running command: %w", err)
	}

	out := stdout.Bytes()
	errStr := strings.TrimSpace(stderr.String())
	if errStr != "" {
		return nil, errors.New(errStr)
	}

	return out, checkForErr(string(out))
}

func checkForErr(out string) error {
	out = strings.TrimSpace(out)
	switch out {
	case unknownReqOutput:
		return ErrUnknownRequest
	default:
		return nil
	}
}
