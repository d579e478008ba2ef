// Package probe measures how the API answers: one minimal call per endpoint,
// timed, with the row count and whether a continuation token came back.
package probe

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
)

// DefaultTimeout bounds a single probe call.
const DefaultTimeout = 20 * time.Second

// Result holds the outcome of probing one endpoint.
type Result struct {
	Endpoint string
	Group    string
	Latency  time.Duration
	Rows     int
	HasMore  bool
	Err      error
}

// Healthy reports whether the call returned a decodable page.
func (r Result) Healthy() bool { return r.Err == nil }

// Check calls d once with limit=1 and measures the round trip. Endpoints whose
// request has no limit field are called without a body.
func Check(ctx context.Context, c *hellomoon.Client, apiKey string, d hellomoon.Descriptor, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := Result{Endpoint: d.Name, Group: d.Group}

	req, err := d.DecodeRequest([]byte(`{"limit":1}`))
	if err != nil {
		req = nil
	}

	start := time.Now()
	raw, err := d.Raw(ctx, c, apiKey, req)
	res.Latency = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}

	var page hellomoon.Page[json.RawMessage]
	if err := json.Unmarshal(raw, &page); err != nil {
		res.Err = err
		return res
	}
	res.Rows = page.Len()
	_, res.HasMore = page.Next()
	return res
}

// Run probes every descriptor with at most parallel calls in flight
// (parallel <= 0 means no limit). Results keep the order of ds.
func Run(ctx context.Context, c *hellomoon.Client, apiKey string, ds []hellomoon.Descriptor, parallel int, timeout time.Duration) []Result {
	results := make([]Result, len(ds))

	var g errgroup.Group
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, d := range ds {
		g.Go(func() error {
			results[i] = Check(ctx, c, apiKey, d, timeout)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Summary aggregates a probe run.
type Summary struct {
	Total   int
	Failed  int
	Fastest *Result // nil when nothing succeeded
	Slowest *Result
	Median  time.Duration
}

// Summarize computes latency statistics over the healthy results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}

	var ok []*Result
	for i := range results {
		if results[i].Healthy() {
			ok = append(ok, &results[i])
		} else {
			s.Failed++
		}
	}
	if len(ok) == 0 {
		return s
	}

	sort.SliceStable(ok, func(i, j int) bool { return ok[i].Latency < ok[j].Latency })
	s.Fastest = ok[0]
	s.Slowest = ok[len(ok)-1]

	mid := len(ok) / 2
	if len(ok)%2 == 1 {
		s.Median = ok[mid].Latency
	} else {
		s.Median = (ok[mid-1].Latency + ok[mid].Latency) / 2
	}
	return s
}

// FirstOfEachGroup picks one representative endpoint per group, in group order.
func FirstOfEachGroup(ds []hellomoon.Descriptor) []hellomoon.Descriptor {
	seen := map[string]bool{}
	var out []hellomoon.Descriptor
	for _, d := range ds {
		if seen[d.Group] {
			continue
		}
		seen[d.Group] = true
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}
