package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

func runIndicators(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("indicators", "", stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRESULT\tPARAMS")
	for _, k := range indicator.Kinds() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, k.Result(), paramSummary(k))
	}
	tw.Flush()
	return exitOK
}

// paramSummary renders required params as <period> and optional ones with their defaults
func paramSummary(k indicator.Kind) string {
	var params []string
	for i := 0; i < k.MinParams(); i++ {
		params = append(params, "<period>")
	}
	for _, d := range k.Defaults() {
		params = append(params, "["+d+"]")
	}
	if len(params) == 0 {
		return "-"
	}
	return "(" + strings.Join(params, ", ") + ")"
}
