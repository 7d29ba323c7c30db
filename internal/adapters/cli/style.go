// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 70

var (
	bold   = color.New(color.Bold).SprintFunc()
	header = color.New(color.Bold, color.FgCyan).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func rule() string {
	return strings.Repeat("═", ruleWidth)
}

// firstN joins up to n items and notes how many were left out.
func firstN(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + dim(" (+", len(items)-n, " more)")
}
