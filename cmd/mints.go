package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/solana"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

var (
	mintsLimit      int
	mintsCollection string
)

var mintsCmd = &cobra.Command{
	Use:   "mints <owner-address>",
	Short: "List the NFT mints held by a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner := args[0]
		if err := solana.ValidateAddress(owner); err != nil {
			return err
		}
		if mintsCollection != "" && !solana.IsCollectionID(mintsCollection) {
			return fmt.Errorf("--collection must be a helloMoonCollectionId (32 hex characters)")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		key, err := apiKey()
		if err != nil {
			return err
		}

		req := &hellomoon.MintsByOwnerRequest{OwnerAccount: owner, HelloMoonCollectionID: mintsCollection}
		if mintsLimit > 0 {
			req.Limit = hellomoon.Ptr(mintsLimit)
		}

		spin := ui.NewSpinner("Fetching mints of " + ui.Addr(ui.TruncateAddr(owner)) + "...")
		spin.Start()
		page, err := hellomoon.MintsByOwner.Call(cmd.Context(), client, key, req)
		spin.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON() {
			return writeJSON(out, page)
		}
		if page.Len() == 0 {
			fmt.Fprintln(out, ui.Meta("No NFTs found."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Mint", Width: 44},
			{Title: "Name", Width: 28},
			{Title: "Symbol", Width: 10},
			{Title: "Collection id", Width: 32},
		})
		for _, m := range page.Data {
			t.AddRow(mintRow(m))
		}
		fmt.Fprintf(out, "%s  %s\n\n", ui.StyleTitle.Render("NFTs"), ui.Meta(fmt.Sprintf("(%s, %d)", owner, page.Len())))
		fmt.Fprintln(out, t.Render())
		if tok, ok := page.Next(); ok {
			fmt.Fprintln(out, ui.Info("more results: moon call mints-by-owner --set ownerAccount="+owner+" --token "+tok))
		}
		return nil
	},
}

func mintRow(m hellomoon.OwnedMint) ui.Row {
	var name, symbol string
	if m.MetadataJSON != nil {
		name = deref(m.MetadataJSON.Name)
		symbol = deref(m.MetadataJSON.Symbol)
	}
	return ui.Row{
		orDash(deref(m.NFTMint)),
		orDash(name),
		orDash(symbol),
		orDash(deref(m.HelloMoonCollectionID)),
	}
}

func init() {
	mintsCmd.Flags().IntVar(&mintsLimit, "limit", 0, "maximum mints to return")
	mintsCmd.Flags().StringVar(&mintsCollection, "collection", "", "only mints of this helloMoonCollectionId")
}
