// endpoint-smoke: calls every catalog endpoint once with limit=1 in parallel
// and prints a status table. Needs HELLOMOON_API_KEY.
//
// Run from the module root:
//
//	go run ./scripts/endpoint-smoke
//	go run ./scripts/endpoint-smoke -group nft-summary
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/probe"
)

const (
	parallelism = 4  // the API rate-limits bursts per key
	maxNote     = 60 // runes of an error shown in the NOTE column
)

func main() {
	group := flag.String("group", "", "only endpoints of this group")
	baseURL := flag.String("base-url", hellomoon.DefaultBaseURL, "API base URL")
	flag.Parse()

	key, err := apiKeyFromEnv(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var ds []hellomoon.Descriptor
	for _, d := range hellomoon.Catalog() {
		if *group == "" || d.Group == *group {
			ds = append(ds, d)
		}
	}

	client := hellomoon.NewClient(hellomoon.WithBaseURL(*baseURL))
	results := probe.Run(context.Background(), client, key, ds, parallelism, probe.DefaultTimeout)

	printTable(results)
	if probe.Summarize(results).Failed > 0 {
		os.Exit(1)
	}
}

// apiKeyFromEnv loads envFile (when present) and returns the API key.
func apiKeyFromEnv(envFile string) (string, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return "", err
	}
	key := os.Getenv(config.EnvAPIKey)
	if key == "" {
		key = os.Getenv(config.EnvLegacyAPIKey)
	}
	if key == "" {
		return "", errors.New(config.EnvAPIKey + " is not set")
	}
	return key, nil
}

func printTable(results []probe.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "GROUP\tENDPOINT\tSTATUS\tLATENCY\tROWS\tMORE\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 12)+"\t"+
		strings.Repeat("-", 28)+"\t"+
		strings.Repeat("-", 6)+"\t"+
		strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 4)+"\t"+
		strings.Repeat("-", 4)+"\t"+
		strings.Repeat("-", 24))

	lastGroup := ""
	for _, r := range results {
		if r.Group != lastGroup {
			if lastGroup != "" {
				fmt.Fprintln(w, "\t\t\t\t\t\t") // blank separator between groups
			}
			lastGroup = r.Group
		}
		status, rows, more, note := "ok", fmt.Sprintf("%d", r.Rows), "", ""
		if r.HasMore {
			more = "yes"
		}
		if !r.Healthy() {
			status, rows, note = "FAIL", "—", shortErr(r.Err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\t%s\t%s\n",
			r.Group, r.Endpoint, status, r.Latency.Milliseconds(), rows, more, note)
	}
	w.Flush()

	s := probe.Summarize(results)
	fmt.Printf("\n%d endpoints, %d failed", s.Total, s.Failed)
	if s.Fastest != nil {
		fmt.Printf(", median %dms", s.Median.Milliseconds())
	}
	fmt.Println()
}

func shortErr(err error) string {
	s := err.Error()
	if i := strings.Index(s, "HTTP "); i >= 0 {
		s = s[i:]
	}
	if r := []rune(s); len(r) > maxNote {
		s = string(r[:maxNote]) + "…"
	}
	return s
}
