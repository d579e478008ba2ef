package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

var endpointsGroup string

var endpointsCmd = &cobra.Command{
	Use:     "endpoints [name]",
	Aliases: []string{"ls"},
	Short:   "List the API endpoints, or show the request fields of one",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			d, ok := hellomoon.Lookup(args[0])
			if !ok {
				return unknownEndpoint(args[0])
			}
			if wantJSON() {
				return writeJSON(out, endpointJSON(d))
			}
			fmt.Fprintln(out, describeEndpoint(d))
			return nil
		}

		list, err := filterEndpoints(hellomoon.Catalog(), endpointsGroup)
		if err != nil {
			return err
		}
		if wantJSON() {
			rows := make([]map[string]any, len(list))
			for i, d := range list {
				rows[i] = endpointJSON(d)
			}
			return writeJSON(out, rows)
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Endpoint", Width: 32},
			{Title: "Group", Width: 13},
			{Title: "Path", Width: 42},
			{Title: "Summary", Width: 50},
		})
		for _, d := range list {
			t.AddRow(ui.Row{d.Name, d.Group, d.Path, d.Summary})
		}
		fmt.Fprintf(out, "%s  %s\n\n", ui.StyleTitle.Render("Endpoints"), ui.Meta(fmt.Sprintf("(%d)", len(list))))
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta("Request fields: moon endpoints <name>"))
		return nil
	},
}

// filterEndpoints keeps the endpoints of group, or all of them when group is empty.
func filterEndpoints(all []hellomoon.Descriptor, group string) ([]hellomoon.Descriptor, error) {
	if group == "" {
		return all, nil
	}
	if !slices.Contains(hellomoon.Groups(), group) {
		return nil, fmt.Errorf("unknown group %q (valid: %s)", group, strings.Join(hellomoon.Groups(), ", "))
	}
	var out []hellomoon.Descriptor
	for _, d := range all {
		if d.Group == group {
			out = append(out, d)
		}
	}
	return out, nil
}

func endpointJSON(d hellomoon.Descriptor) map[string]any {
	return map[string]any{
		"name":    d.Name,
		"group":   d.Group,
		"path":    d.Path,
		"summary": d.Summary,
		"fields":  d.Fields(),
	}
}

func describeEndpoint(d hellomoon.Descriptor) string {
	var sb strings.Builder
	sb.WriteString(ui.KeyValueBlock(d.Name, [][2]string{
		{"Group", d.Group},
		{"Path", d.Path},
		{"Summary", d.Summary},
	}))
	sb.WriteString("\n\n")

	t := ui.NewTable([]ui.Column{
		{Title: "Field", Width: 24},
		{Title: "Type", Width: 10},
		{Title: "Values", Width: 60},
	})
	for _, f := range d.Fields() {
		t.AddRow(ui.Row{f.Name, f.Kind, fieldValues(f)})
	}
	sb.WriteString(t.Render())
	sb.WriteString(ui.Meta("Set fields with: moon call " + d.Name + " --set name=value"))
	return sb.String()
}

// fieldValues hints what a field accepts.
func fieldValues(f hellomoon.Field) string {
	if f.Enum {
		if vals, ok := enumValues[f.Name]; ok {
			return strings.Join(vals, " | ")
		}
	}
	if f.Kind == hellomoon.KindFilter {
		return `5 | {"operator":">","value":5} | {"operator":"between","greaterThan":1,"lessThan":9}`
	}
	return ""
}

var enumValues = map[string][]string{
	"instructionName": names(hellomoon.InstructionNames),
	"market":          names(hellomoon.Markets),
	"marketplace":     names(hellomoon.Marketplaces),
	"granularity":     names(hellomoon.Granularities),
	"aggregatorName":  names(hellomoon.Aggregators),
}

func names[E ~string](all []E) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}

func unknownEndpoint(name string) error {
	var near []string
	for _, d := range hellomoon.Catalog() {
		if strings.Contains(d.Name, name) || strings.Contains(name, d.Name) {
			near = append(near, d.Name)
		}
	}
	if len(near) > 0 {
		return fmt.Errorf("unknown endpoint %q (did you mean %s?)", name, strings.Join(near, ", "))
	}
	return fmt.Errorf("unknown endpoint %q (see: moon endpoints)", name)
}

func init() {
	endpointsCmd.Flags().StringVar(&endpointsGroup, "group", "", "only list one group: nft, defi, nft-summary, defi-summary")
}
