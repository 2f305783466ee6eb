package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"remoteselect/internal/domain"
	"remoteselect/internal/fetch"
	"remoteselect/internal/render"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Fetch the items matching text once and print them",
	Long: `Send a single query to the item source, without debouncing, and print
the key and rendered label of every item.

Examples:
  remoteselect query
  remoteselect query ap
  remoteselect query --json ap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

var queryJSON bool

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print items as JSON lines")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	text := ""
	if len(args) > 0 {
		text = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Fetch.Timeout())
	defer cancel()

	src := fetch.NewHTTPSource(cfg.Endpoint, fetch.WithKeyProperty(cfg.KeyProperty))
	items, err := src.Fetch(ctx, text)
	if err != nil {
		return fmt.Errorf("query %q: %w", text, err)
	}

	out := writeOut(cmd)
	if queryJSON {
		for _, it := range items {
			fmt.Fprintln(out, it.JSON())
		}
		return nil
	}
	printItems(out, items, cfg.KeyProperty, render.Compile(cfg.DisplayTemplate))
	return nil
}

func printItems(w io.Writer, items []domain.Item, keyProperty string, tmpl render.Template) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items")
		return
	}

	var data [][]string
	for _, it := range items {
		data = append(data, []string{it.Key(keyProperty), tmpl.Render(it)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KEY", "LABEL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
