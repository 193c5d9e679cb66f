package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Command returns the editor from $EDITOR, falling back to vim.
func Command() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

// EditTempFile opens sql in editor and returns the edited text without the
// instruction block. The editor string may carry arguments, it is run
// through the shell with the file path appended.
func EditTempFile(editor, sql, prefix string) (string, error) {
	path, err := writeTempFile(prefix, Instructions+sql)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	cmd := exec.Command("sh", "-c", editor+` "$1"`, "sh", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited sql: %w", err)
	}
	return StripInstructions(string(edited)), nil
}

// writeTempFile stores content in a new .sql file and returns its path. The
// file is closed so the editor can replace it.
func writeTempFile(prefix, content string) (string, error) {
	f, err := os.CreateTemp("", prefix+"*.sql")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", werr)
	}
	return f.Name(), nil
}
