package editor

import (
	"strings"
)

const instructionSeparator = "--"

// Instructions is prepended to the file opened in the editor.
const Instructions = `-- Edit the SQL below, then save and exit to run it
-- Exit without saving an empty file to cancel
--
`

// HasInstructions checks if content starts with the instruction block
func HasInstructions(content string) bool {
	return strings.HasPrefix(content, Instructions)
}

// StripInstructions removes the instruction block and surrounding blank space
func StripInstructions(content string) string {
	if !HasInstructions(content) {
		// the block may have been edited, drop everything up to a bare "--"
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if strings.TrimSpace(line) == instructionSeparator {
				return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			}
		}
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(strings.TrimPrefix(content, Instructions))
}
