package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/probe"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

var (
	pingAll      bool
	pingParallel int
)

var pingCmd = &cobra.Command{
	Use:   "ping [endpoint...]",
	Short: "Check the API key and measure endpoint latency",
	Long: `Call endpoints once with limit=1 and report latency and status.

Without arguments one endpoint of each group is called; --all calls the whole
catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ds []hellomoon.Descriptor
		switch {
		case len(args) > 0:
			for _, name := range args {
				d, ok := hellomoon.Lookup(name)
				if !ok {
					return unknownEndpoint(name)
				}
				ds = append(ds, d)
			}
		case pingAll:
			ds = hellomoon.Catalog()
		default:
			ds = probe.FirstOfEachGroup(hellomoon.Catalog())
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		key, err := apiKey()
		if err != nil {
			return err
		}
		d, err := callTimeout()
		if err != nil {
			return err
		}

		spin := ui.NewSpinner(fmt.Sprintf("Probing %d endpoints...", len(ds)))
		spin.Start()
		results := probe.Run(cmd.Context(), client, key, ds, pingParallel, d)
		spin.Stop()

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, pingJSON(results)); err != nil {
				return err
			}
		} else {
			printPing(out, results)
		}
		if s := probe.Summarize(results); s.Failed > 0 {
			return fmt.Errorf("%d of %d endpoints failed", s.Failed, s.Total)
		}
		return nil
	},
}

func pingJSON(results []probe.Result) []map[string]any {
	rows := make([]map[string]any, len(results))
	for i, r := range results {
		row := map[string]any{
			"endpoint":  r.Endpoint,
			"group":     r.Group,
			"latencyMs": r.Latency.Milliseconds(),
			"rows":      r.Rows,
			"more":      r.HasMore,
			"ok":        r.Healthy(),
		}
		if r.Err != nil {
			row["error"] = r.Err.Error()
		}
		rows[i] = row
	}
	return rows
}

func printPing(w io.Writer, results []probe.Result) {
	t := ui.NewTable([]ui.Column{
		{Title: "Endpoint", Width: 32},
		{Title: "Group", Width: 13},
		{Title: "Latency", Width: 9},
		{Title: "Rows", Width: 5},
		{Title: "Status", Width: 40},
	})
	for _, r := range results {
		status := ui.Success("ok")
		if !r.Healthy() {
			status = ui.Err(r.Err.Error())
		}
		t.AddRow(ui.Row{r.Endpoint, r.Group, latencyString(r.Latency), fmt.Sprintf("%d", r.Rows), status})
	}
	fmt.Fprintln(w, t.Render())

	s := probe.Summarize(results)
	line := fmt.Sprintf("%d endpoints, %d failed", s.Total, s.Failed)
	if s.Fastest != nil {
		line += fmt.Sprintf(", median %s, fastest %s (%s)", latencyString(s.Median), s.Fastest.Endpoint, latencyString(s.Fastest.Latency))
	}
	fmt.Fprintln(w, ui.Meta(line))
}

func latencyString(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func init() {
	pingCmd.Flags().BoolVar(&pingAll, "all", false, "probe every endpoint")
	pingCmd.Flags().IntVar(&pingParallel, "parallel", 4, "maximum calls in flight")
}
