package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandChecker runs an external readiness command (e.g. pg_isready)
// and maps its exit status to an outcome. Exit 0 is ready; anything
// else, including a killed-by-deadline process, is FAIL.
type CommandChecker struct {
	Command string
	Args    []string
}

func NewCommandChecker(command string, args ...string) *CommandChecker {
	return &CommandChecker{Command: command, Args: args}
}

func (c *CommandChecker) Check(ctx context.Context) Outcome {
	start := time.Now()
	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	combined, err := cmd.CombinedOutput()
	latency := time.Since(start).Seconds() * 1000

	var out Outcome
	if err != nil {
		detail := excerpt(combined)
		if detail == "" {
			detail = err.Error()
		}
		out = Fail(fmt.Sprintf("%s: %s", c.Command, detail))
	} else {
		out = OK(fmt.Sprintf("%s: exit 0", c.Command))
	}
	out.LatencyMS = latency
	return out
}

// excerpt keeps the first line of command output so alert messages stay
// single-line.
func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
