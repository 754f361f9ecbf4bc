package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose/catalog"
)

var (
	catalogURL    string
	catalogToken  string
	catalogBase   string
	catalogSearch string
	catalogSale   bool
	catalogLimit  int
	catalogPages  int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List stamps or remote products",
	Long: `List the built-in stamps, or page through a remote product catalog
when --url is given. References printed in the REF column can be passed to
render --stamp.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	f := catalogCmd.Flags()
	f.StringVar(&catalogURL, "url", "", "product catalog endpoint")
	f.StringVar(&catalogToken, "token", os.Getenv("COMPOSE_CATALOG_TOKEN"), "bearer token for the catalog endpoint")
	f.StringVar(&catalogBase, "stamps", "stamps", "directory or URL prefix of the built-in stamps")
	f.StringVarP(&catalogSearch, "search", "s", "", "filter by name")
	f.BoolVar(&catalogSale, "sale", false, "only items on sale")
	f.IntVar(&catalogLimit, "limit", catalog.DefaultLimit, "page size")
	f.IntVar(&catalogPages, "pages", 1, "pages to fetch (0 fetches all)")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var src catalog.Source = catalog.BuiltinStamps(catalogBase)
	if catalogURL != "" {
		src = &catalog.HTTPSource{URL: catalogURL, Token: catalogToken}
	}

	items, more, err := fetchPages(cmd.Context(), catalog.NewPager(src, catalogLimit), catalogPages)
	if err != nil {
		return err
	}
	items = catalog.Filter(items, catalogSearch, catalogSale)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tREF")
	for _, it := range items {
		price := "-"
		if it.Price > 0 {
			price = fmt.Sprint(it.Price)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, price, it.Ref)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if more {
		fmt.Println("(more available, raise --pages)")
	}
	return nil
}

func fetchPages(ctx context.Context, p *catalog.Pager, pages int) ([]catalog.Item, bool, error) {
	for i := 0; pages <= 0 || i < pages; i++ {
		if err := p.Next(ctx); err != nil {
			return nil, false, err
		}
		if !p.HasMore() {
			break
		}
	}
	return p.Items(), p.HasMore(), nil
}
