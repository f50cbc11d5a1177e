package notify

import (
	"fmt"
	"strings"

	"github.com/hamed0406/healthagg/internal/aggregate"
)

// Format builds the one consolidated alert for a pass: a header with
// host identity and FAIL/WARN counts, then one line per failing check,
// then one line per warning check. Batching everything into a single
// message is deliberate; per-check alerts turn one bad dependency into
// an alert storm.
func Format(rep *aggregate.Report) (title, text string) {
	failures := rep.Failures()
	warnings := rep.Warnings()

	host := rep.Host
	if host == "" {
		host = "unknown host"
	}
	title = fmt.Sprintf("Health %s on %s", rep.Overall(), host)

	var b strings.Builder
	fmt.Fprintf(&b, "FAIL (%d) / WARN (%d)\n", len(failures), len(warnings))
	for _, o := range failures {
		fmt.Fprintf(&b, "FAIL %s: %s\n", o.Name, o.Message)
	}
	for _, o := range warnings {
		fmt.Fprintf(&b, "WARN %s: %s\n", o.Name, o.Message)
	}
	return title, strings.TrimRight(b.String(), "\n")
}
