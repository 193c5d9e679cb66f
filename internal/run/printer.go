package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Printer writes client output, either as text or through the filter tool.
type Printer struct {
	FilterTool string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Raw prints result decoded as text followed by a newline.
func (p Printer) Raw(result []byte) error {
	_, err := fmt.Fprintln(p.Stdout, string(result))
	return err
}

// Filter feeds result to the filter tool on stdin and lets it write to the
// printer's streams directly. A non-zero exit of the tool is returned as an
// *exec.ExitError.
func (p Printer) Filter(ctx context.Context, result []byte, expression string) error {
	logrus.WithFields(logrus.Fields{
		"tool":   p.FilterTool,
		"filter": expression,
	}).Debug("piping result through filter tool")

	cmd := exec.CommandContext(ctx, p.FilterTool, expression)
	cmd.Stdin = bytes.NewReader(result)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if err := cmd.Run(); err != nil {
		if IsExitError(err) {
			return err
		}
		return fmt.Errorf("could not run %s: %w", p.FilterTool, err)
	}
	return nil
}

// Print applies the result branch: raw text when JSON or filtering is
// switched off, the filter tool otherwise.
func (p Printer) Print(ctx context.Context, req Request, result []byte) error {
	if req.NoJSON || req.NoJQ {
		return p.Raw(result)
	}
	return p.Filter(ctx, result, FilterExpression(req))
}
