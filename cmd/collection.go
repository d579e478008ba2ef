package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/xhit/go-str2duration/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/solana"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

var (
	collSince       string
	collLimit       int
	collGranularity string
)

var collectionCmd = &cobra.Command{
	Use:   "collection <collection-id | name>",
	Short: "Floor, sales and listing activity of an NFT collection",
	Long: `Show a snapshot of one NFT collection over a time window.

The collection is given by its 32-character helloMoonCollectionId or by name;
names are resolved through collection-name-mapping. Candlesticks, listings and
secondary sales are then fetched concurrently.`,
	Example: `  moon collection 040de757c0d2b75dcee999ddd47689c4
  moon collection "Okay Bears" --since 3d --granularity ONE_HOUR`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := str2duration.ParseDuration(collSince)
		if err != nil || window <= 0 {
			return fmt.Errorf("invalid --since %q: use e.g. 12h, 7d, 2w", collSince)
		}
		gran, err := hellomoon.ParseGranularity(collGranularity)
		if err != nil {
			return fmt.Errorf("--granularity: %w", err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		key, err := apiKey()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.SnapshotTimeout)
		defer cancel()

		spin := ui.NewSpinner("Fetching collection activity...")
		spin.Start()
		snap, err := fetchSnapshot(ctx, client, key, strings.Join(args, " "), snapshotOptions{
			Since:       window,
			Limit:       collLimit,
			Granularity: gran,
			Now:         time.Now(),
		})
		spin.Stop()
		if err != nil {
			return err
		}

		if wantJSON() {
			return writeJSON(cmd.OutOrStdout(), snap)
		}
		printSnapshot(cmd.OutOrStdout(), snap)
		return nil
	},
}

type snapshotOptions struct {
	Since       time.Duration
	Limit       int
	Granularity hellomoon.Granularity
	Now         time.Time
}

// snapshot is everything shown by `moon collection`.
type snapshot struct {
	CollectionID string                  `json:"helloMoonCollectionId"`
	Name         string                  `json:"collectionName,omitempty"`
	Since        time.Time               `json:"since"`
	Candles      []hellomoon.Candlestick `json:"candlesticks"`
	Listings     []hellomoon.NFTListing  `json:"listings"`
	Sales        []hellomoon.Sale        `json:"sales"`
	SaleStats    saleStats               `json:"saleStats"`
}

// fetchSnapshot resolves query to a collection id and fetches the three
// activity endpoints concurrently. The first failure cancels the others.
func fetchSnapshot(ctx context.Context, c *hellomoon.Client, key, query string, opts snapshotOptions) (*snapshot, error) {
	id, name, err := resolveCollection(ctx, c, key, query)
	if err != nil {
		return nil, err
	}
	since := hellomoon.Since(opts.Now, opts.Since)
	snap := &snapshot{CollectionID: id, Name: name, Since: opts.Now.Add(-opts.Since).UTC()}

	var limit *int
	if opts.Limit > 0 {
		limit = hellomoon.Ptr(opts.Limit)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := hellomoon.CollectionCandlesticks.Call(gctx, c, key, &hellomoon.CandlesticksRequest{
			HelloMoonCollectionID: id,
			Granularity:           opts.Granularity,
			StartTime:             since,
		})
		if err != nil {
			return err
		}
		snap.Candles = page.Data
		return nil
	})
	g.Go(func() error {
		page, err := hellomoon.NFTListings.Call(gctx, c, key, &hellomoon.NFTListingsRequest{
			HelloMoonCollectionID: id,
			BlockTime:             since,
			Paging:                hellomoon.Paging{Limit: limit},
		})
		if err != nil {
			return err
		}
		snap.Listings = page.Data
		return nil
	})
	g.Go(func() error {
		page, err := hellomoon.SecondarySales.Call(gctx, c, key, &hellomoon.SecondarySalesRequest{
			HelloMoonCollectionID: id,
			BlockTime:             since,
			Paging:                hellomoon.Paging{Limit: limit},
		})
		if err != nil {
			return err
		}
		snap.Sales = page.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortCandles(snap.Candles)
	snap.SaleStats = summarizeSales(snap.Sales)
	return snap, nil
}

// resolveCollection returns query itself when it is a collection id, and
// otherwise looks the name up. An exact (case-insensitive) name match wins
// over the first partial match.
func resolveCollection(ctx context.Context, c *hellomoon.Client, key, query string) (id, name string, err error) {
	query = strings.TrimSpace(query)
	if solana.IsCollectionID(query) {
		return query, "", nil
	}
	page, err := hellomoon.CollectionNameMapping.Call(ctx, c, key, &hellomoon.CollectionNameRequest{
		CollectionName: query,
		Paging:         hellomoon.Paging{Limit: hellomoon.Ptr(10)},
	})
	if err != nil {
		return "", "", err
	}
	m, ok := pickCollection(page.Data, query)
	if !ok {
		return "", "", fmt.Errorf("no collection named %q", query)
	}
	return deref(m.HelloMoonCollectionID), deref(m.CollectionName), nil
}

func pickCollection(rows []hellomoon.CollectionName, query string) (hellomoon.CollectionName, bool) {
	var first *hellomoon.CollectionName
	for i := range rows {
		r := &rows[i]
		if deref(r.HelloMoonCollectionID) == "" {
			continue
		}
		if strings.EqualFold(deref(r.CollectionName), query) {
			return *r, true
		}
		if first == nil {
			first = r
		}
	}
	if first == nil {
		return hellomoon.CollectionName{}, false
	}
	return *first, true
}

// saleStats aggregates secondary sales; amounts are lamport strings.
type saleStats struct {
	Count    int    `json:"count"`
	Volume   string `json:"volumeLamports"`
	Min      string `json:"minLamports,omitempty"`
	Max      string `json:"maxLamports,omitempty"`
	Average  string `json:"averageLamports,omitempty"`
	Unpriced int    `json:"unpriced,omitempty"`
}

func summarizeSales(sales []hellomoon.Sale) saleStats {
	st := saleStats{Count: len(sales)}
	volume := decimal.Zero
	var lo, hi decimal.Decimal
	priced := 0
	for _, s := range sales {
		p, err := decimal.NewFromString(deref(s.Price))
		if err != nil {
			st.Unpriced++
			continue
		}
		if priced == 0 || p.LessThan(lo) {
			lo = p
		}
		if priced == 0 || p.GreaterThan(hi) {
			hi = p
		}
		volume = volume.Add(p)
		priced++
	}
	st.Volume = volume.String()
	if priced > 0 {
		st.Min = lo.String()
		st.Max = hi.String()
		st.Average = volume.DivRound(decimal.NewFromInt(int64(priced)), 0).String()
	}
	return st
}

func sortCandles(cs []hellomoon.Candlestick) {
	sort.SliceStable(cs, func(i, j int) bool {
		return deref(cs[i].StartTime) < deref(cs[j].StartTime)
	})
}

func printSnapshot(w io.Writer, s *snapshot) {
	title := s.CollectionID
	if s.Name != "" {
		title = s.Name
	}
	floor := solana.Placeholder
	if n := len(s.Candles); n > 0 {
		floor = solana.FormatSOLPtr(s.Candles[n-1].Close)
	}
	fmt.Fprintln(w, ui.KeyValueBlock(title, [][2]string{
		{"Collection id", s.CollectionID},
		{"Since", s.Since.Format(time.RFC3339)},
		{"Latest floor", floor},
		{"Sales", fmt.Sprintf("%d", s.SaleStats.Count)},
		{"Sales volume", solana.FormatSOL(s.SaleStats.Volume)},
		{"Average sale", solana.FormatSOL(s.SaleStats.Average)},
		{"Min / max sale", solana.FormatSOL(s.SaleStats.Min) + " / " + solana.FormatSOL(s.SaleStats.Max)},
		{"Listing actions", fmt.Sprintf("%d", len(s.Listings))},
	}))

	if len(s.Candles) > 0 {
		t := ui.NewTable([]ui.Column{
			{Title: "Start (UTC)", Width: 17},
			{Title: "Open", Width: 16},
			{Title: "High", Width: 16},
			{Title: "Low", Width: 16},
			{Title: "Close", Width: 16},
		})
		for _, c := range s.Candles {
			t.AddRow(ui.Row{
				unixString(deref(c.StartTime)),
				solana.FormatSOLPtr(c.Open),
				solana.FormatSOLPtr(c.High),
				solana.FormatSOLPtr(c.Low),
				solana.FormatSOLPtr(c.Close),
			})
		}
		fmt.Fprintf(w, "\n%s\n\n%s", ui.StyleTitle.Render("Floor price"), t.Render())
	}

	if len(s.Sales) > 0 {
		t := ui.NewTable([]ui.Column{
			{Title: "Time (UTC)", Width: 17},
			{Title: "Mint", Width: 10},
			{Title: "Buyer", Width: 10},
			{Title: "Seller", Width: 10},
			{Title: "Price", Width: 18},
			{Title: "Marketplace", Width: 12},
		})
		for _, sale := range s.Sales {
			t.AddRow(ui.Row{
				unixString(parseUnix(deref(sale.BlockTime))),
				ui.TruncateAddr(deref(sale.NFTMint)),
				ui.TruncateAddr(deref(sale.Buyer)),
				ui.TruncateAddr(deref(sale.Seller)),
				solana.FormatSOLPtr(sale.Price),
				orDash(deref(sale.Marketplace)),
			})
		}
		fmt.Fprintf(w, "\n%s\n\n%s", ui.StyleTitle.Render("Recent sales"), t.Render())
	}
}

func parseUnix(s string) int64 {
	var n int64
	if _, err := fmt.Sscan(s, &n); err != nil {
		return 0
	}
	return n
}

func unixString(sec int64) string {
	if sec <= 0 {
		return "—"
	}
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04")
}

func init() {
	collectionCmd.Flags().StringVar(&collSince, "since", "7d", "time window, e.g. 12h, 7d, 2w")
	collectionCmd.Flags().IntVar(&collLimit, "limit", 20, "maximum listings and sales to fetch")
	collectionCmd.Flags().StringVar(&collGranularity, "granularity", string(hellomoon.GranularityOneDay), "candlestick size: ONE_MIN, FIVE_MIN, ONE_HOUR, ONE_DAY, ONE_WEEK")
}
