// Copyright (c) 2026 Sentinel Team
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

//nolint:errcheck
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/charmbracelet/log"
)

const cliTestConfig = `# managed by tests
Port 22
#PermitRootLogin yes
PasswordAuthentication no
`

// setupTestEnv isolates the test from the user's real config directory
// and creates a throwaway sshd_config to edit. The file and database are
// wired up through SENTINEL_* environment variables so every subcommand
// picks them up without extra flags.
func setupTestEnv(t *testing.T) (configPath string) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	configPath = filepath.Join(dir, "sshd_config")
	if err := os.WriteFile(configPath, []byte(cliTestConfig), 0o600); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	// Unique in-memory SQLite database per test run. The file: URI with
	// mode=memory and cache=shared keeps it alive across connections.
	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())

	t.Setenv("SENTINEL_FILE", configPath)
	t.Setenv("SENTINEL_DATABASE_TYPE", "sqlite")
	t.Setenv("SENTINEL_DATABASE_DSN", dsn)
	return configPath
}

// executeCommand runs a cobra command with the given arguments and captures its output.
func executeCommand(t *testing.T, args ...string) string {
	t.Helper()

	// Redirect stdout and stderr to a buffer so we capture log output.
	oldOut := os.Stdout
	oldErr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w
	log.SetOutput(w)
	defer log.SetOutput(os.Stderr)
	defer func() {
		os.Stdout = oldOut
		os.Stderr = oldErr
	}()

	// Create a new root command for each test to ensure isolation
	root := NewRootCmd()
	root.SetArgs(args)

	// Execute the command
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	// Read the output from the buffer
	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read command output: %v", err)
	}

	return buf.String()
}

func TestListCmd(t *testing.T) {
	setupTestEnv(t)

	output := executeCommand(t, "list")

	if !strings.Contains(output, "Port 22") {
		t.Errorf("expected Port in listing, got:\n%s", output)
	}
	if !strings.Contains(output, "PermitRootLogin yes (disabled)") {
		t.Errorf("expected disabled marker for PermitRootLogin, got:\n%s", output)
	}
	if !strings.Contains(output, "# managed by tests") {
		t.Errorf("expected verbatim comment line, got:\n%s", output)
	}
}

func TestGetCmd(t *testing.T) {
	setupTestEnv(t)

	output := executeCommand(t, "get", "port")

	// Matching is case-insensitive but output shows the file's spelling.
	if !strings.Contains(output, "Port 22") {
		t.Errorf("expected Port 22, got:\n%s", output)
	}
}

func TestSetCmdRewritesOnlyTheTargetLine(t *testing.T) {
	configPath := setupTestEnv(t)

	executeCommand(t, "set", "Port", "2222")

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Port 2222\n") {
		t.Errorf("expected Port 2222 in file, got:\n%s", content)
	}
	// Untouched lines survive byte-for-byte.
	if !strings.Contains(content, "# managed by tests\n") {
		t.Errorf("comment line was not preserved:\n%s", content)
	}
	if !strings.Contains(content, "#PermitRootLogin yes\n") {
		t.Errorf("commented directive was not preserved:\n%s", content)
	}
}

func TestEnableDisableCmds(t *testing.T) {
	configPath := setupTestEnv(t)

	executeCommand(t, "enable", "PermitRootLogin")
	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "PermitRootLogin yes\n") || strings.Contains(string(data), "#PermitRootLogin") {
		t.Fatalf("expected PermitRootLogin enabled, got:\n%s", data)
	}

	executeCommand(t, "disable", "PermitRootLogin")
	data, _ = os.ReadFile(configPath)
	if !strings.Contains(string(data), "#PermitRootLogin yes\n") {
		t.Fatalf("expected PermitRootLogin disabled again, got:\n%s", data)
	}
}

func TestUnsetCmd(t *testing.T) {
	configPath := setupTestEnv(t)

	executeCommand(t, "unset", "PasswordAuthentication")

	data, _ := os.ReadFile(configPath)
	if strings.Contains(string(data), "PasswordAuthentication") {
		t.Fatalf("expected PasswordAuthentication removed, got:\n%s", data)
	}
}

func TestAddCmdAllowsDuplicates(t *testing.T) {
	configPath := setupTestEnv(t)

	executeCommand(t, "add", "Port", "2222")

	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "Port 22\n") || !strings.Contains(string(data), "Port 2222\n") {
		t.Fatalf("expected both Port lines, got:\n%s", data)
	}
}

func TestDescribeCmd(t *testing.T) {
	setupTestEnv(t)

	output := executeCommand(t, "describe", "permitrootlogin")

	if !strings.Contains(output, "PermitRootLogin") {
		t.Errorf("expected canonical keyword name in output, got:\n%s", output)
	}
}

func TestHistoryCmdRecordsSaves(t *testing.T) {
	setupTestEnv(t)

	executeCommand(t, "set", "Port", "2222")
	output := executeCommand(t, "history")

	if !strings.Contains(output, "T") || len(strings.TrimSpace(output)) == 0 {
		t.Errorf("expected at least one revision line, got:\n%s", output)
	}
}

func TestAuditCmdRecordsActions(t *testing.T) {
	setupTestEnv(t)

	executeCommand(t, "set", "Port", "2222")
	output := executeCommand(t, "audit")

	if !strings.Contains(output, "SET_DIRECTIVE") {
		t.Errorf("expected SET_DIRECTIVE audit entry, got:\n%s", output)
	}
	if !strings.Contains(output, "SAVE") {
		t.Errorf("expected SAVE audit entry, got:\n%s", output)
	}
}

func TestBackupAndRestoreCmds(t *testing.T) {
	configPath := setupTestEnv(t)
	archive := filepath.Join(t.TempDir(), "snapshot.conf")

	executeCommand(t, "backup", archive)
	if _, err := os.Stat(archive + ".zst"); err != nil {
		t.Fatalf("expected archive written: %v", err)
	}

	// Mangle the live file, then restore from the archive.
	executeCommand(t, "set", "Port", "9999")
	executeCommand(t, "restore", archive+".zst")

	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "Port 22\n") {
		t.Fatalf("expected original content restored, got:\n%s", data)
	}
}

func TestFileFlagOverridesEnv(t *testing.T) {
	setupTestEnv(t)

	other := filepath.Join(t.TempDir(), "other_config")
	if err := os.WriteFile(other, []byte("MaxAuthTries 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output := executeCommand(t, "list", "--file", other)
	if !strings.Contains(output, "MaxAuthTries 3") {
		t.Errorf("expected flag to win over environment, got:\n%s", output)
	}
}

func TestVersionCmd(t *testing.T) {
	setupTestEnv(t)

	output := executeCommand(t, "version")
	if !strings.Contains(output, "version:") {
		t.Errorf("expected version output, got:\n%s", output)
	}
}
