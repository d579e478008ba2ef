package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

var (
	callBody     string
	callBodyFile string
	callSet      []string
	callLimit    int
	callPage     int
	callToken    string
	callPages    int
	callRaw      bool
	callMaxCols  int
)

var callCmd = &cobra.Command{
	Use:   "call [endpoint]",
	Short: "Call any endpoint with a JSON body or name=value fields",
	Long: `Call any endpoint of the catalog.

The request body is built from, in increasing priority: default_limit from
config, --body / --body-file, --set name=value pairs, and --limit / --page /
--token. Unknown fields are rejected before anything is sent. Without any of
them the request is sent with no body.

Without an endpoint argument an interactive picker is shown.`,
	Example: `  moon call nft-listings --set helloMoonCollectionId=040de757c0d2b75dcee999ddd47689c4 --limit 5
  moon call secondary-sales --set 'price={"operator":">","value":1000000000}'
  moon call defi-swaps --body-file swaps.json --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			picked, err := ui.PickEndpoint(hellomoon.Catalog())
			if err != nil {
				return err
			}
			if picked == "" {
				return nil
			}
			name = picked
		}
		d, ok := hellomoon.Lookup(name)
		if !ok {
			return unknownEndpoint(name)
		}

		in := callInput{
			Body:         callBody,
			Set:          callSet,
			DefaultLimit: cfg.DefaultLimit,
			Token:        callToken,
		}
		if callBodyFile != "" {
			if callBody != "" {
				return fmt.Errorf("--body and --body-file are mutually exclusive")
			}
			b, err := readBodyFile(callBodyFile)
			if err != nil {
				return err
			}
			in.Body = string(b)
		}
		if cmd.Flags().Changed("limit") {
			in.Limit = &callLimit
		}
		if cmd.Flags().Changed("page") {
			in.Page = &callPage
		}
		req, err := buildCallRequest(d, in)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		key, err := apiKey()
		if err != nil {
			return err
		}

		spin := ui.NewSpinner("Calling " + ui.Name(d.Name) + "...")
		spin.Start()
		pages, err := fetchPages(cmd.Context(), client, key, d, req, callPages)
		spin.Stop()
		if err != nil {
			return err
		}
		return printPages(cmd.OutOrStdout(), pages)
	},
}

// callInput collects the sources of a request body.
type callInput struct {
	Body         string
	Set          []string
	DefaultLimit int
	Limit        *int
	Page         *int
	Token        string
}

// buildCallRequest merges the inputs into one strictly validated request.
// It returns nil when no input sets anything, so no body is sent.
func buildCallRequest(d hellomoon.Descriptor, in callInput) (any, error) {
	var base []byte
	if in.DefaultLimit > 0 {
		base = []byte(fmt.Sprintf(`{"limit":%d}`, in.DefaultLimit))
	}
	var err error
	if in.Body != "" {
		if !json.Valid([]byte(in.Body)) {
			return nil, fmt.Errorf("--body is not valid JSON")
		}
		if base, err = hellomoon.MergeRequest(base, json.RawMessage(in.Body)); err != nil {
			return nil, err
		}
	}
	if len(in.Set) > 0 {
		fields, err := d.BuildRequest(in.Set)
		if err != nil {
			return nil, err
		}
		if base, err = hellomoon.MergeRequest(base, fields); err != nil {
			return nil, err
		}
	}
	paging := hellomoon.Paging{Limit: in.Limit, Page: in.Page, PaginationToken: in.Token}
	if paging != (hellomoon.Paging{}) {
		if base, err = hellomoon.MergeRequest(base, paging); err != nil {
			return nil, err
		}
	}
	if base == nil {
		return nil, nil
	}
	return d.DecodeRequest(base)
}

// withToken returns req with its pagination token replaced.
func withToken(d hellomoon.Descriptor, req any, token string) (any, error) {
	var base []byte
	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}
		base = b
	}
	merged, err := hellomoon.MergeRequest(base, hellomoon.Paging{PaginationToken: token})
	if err != nil {
		return nil, err
	}
	return d.DecodeRequest(merged)
}

// fetchPages issues req and follows pagination tokens for up to n pages.
func fetchPages(ctx context.Context, c *hellomoon.Client, key string, d hellomoon.Descriptor, req any, n int) ([]json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	n = max(n, 1)
	var out []json.RawMessage
	for i := 0; i < n; i++ {
		raw, err := d.Raw(ctx, c, key, req)
		if err != nil {
			return out, err
		}
		out = append(out, raw)

		var env hellomoon.Page[json.RawMessage]
		if err := json.Unmarshal(raw, &env); err != nil {
			break
		}
		tok, more := env.Next()
		if !more || i == n-1 {
			break
		}
		logger.Debug().Str("endpoint", d.Name).Int("page", i+2).Msg("following pagination token")
		if req, err = withToken(d, req, tok); err != nil {
			return out, err
		}
	}
	return out, nil
}

func printPages(w io.Writer, pages []json.RawMessage) error {
	if callRaw {
		for _, p := range pages {
			fmt.Fprintln(w, string(p))
		}
		return nil
	}
	if wantJSON() {
		for _, p := range pages {
			fmt.Fprintln(w, ui.PrettyJSON(p))
		}
		return nil
	}

	var rows []map[string]any
	var next string
	for _, p := range pages {
		var page hellomoon.Page[hellomoon.Record]
		if err := json.Unmarshal(p, &page); err != nil {
			// Not the usual envelope: show it as is.
			fmt.Fprintln(w, ui.PrettyJSON(p))
			continue
		}
		rows = append(rows, page.Data...)
		next, _ = page.Next()
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, ui.Meta("No results."))
	} else {
		fmt.Fprintln(w, ui.RecordTable(rows, callMaxCols).Render())
		fmt.Fprintln(w, ui.Meta(fmt.Sprintf("%d rows", len(rows))))
	}
	if next != "" {
		fmt.Fprintln(w, ui.Info("more results: --token "+next))
	}
	return nil
}

func readBodyFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading body file: %w", err)
	}
	return b, nil
}

func init() {
	callCmd.Flags().StringVar(&callBody, "body", "", "request body as a JSON object")
	callCmd.Flags().StringVar(&callBodyFile, "body-file", "", "read the request body from a file (- for stdin)")
	callCmd.Flags().StringArrayVar(&callSet, "set", nil, "set a request field: name=value (repeatable)")
	callCmd.Flags().IntVar(&callLimit, "limit", 0, "results per page")
	callCmd.Flags().IntVar(&callPage, "page", 0, "page number")
	callCmd.Flags().StringVar(&callToken, "token", "", "pagination token from a previous call")
	callCmd.Flags().IntVar(&callPages, "pages", 1, "follow pagination tokens for up to N pages")
	callCmd.Flags().BoolVar(&callRaw, "raw", false, "print the response bodies unmodified")
	callCmd.Flags().IntVar(&callMaxCols, "max-cols", 8, "maximum table columns (0 = all)")
}
