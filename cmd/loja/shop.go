package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonguers/loja/internal/fixtures"
)

func browseCmd(a *app) *cobra.Command {
	var (
		count int
		add   int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a generated catalog and fill the cart",
		Long: `Browse generates a random product catalog the way the home screen
does, optionally adds the first items to the cart, and prints the cart
subtotal. The cart lives only for this process: a fresh run starts empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := fixtures.Products(count)
			for i, p := range products {
				fmt.Printf("%2d. %-40s %s\n", i+1, p.Name, p.Price)
			}

			if add <= 0 {
				return nil
			}
			if add > len(products) {
				add = len(products)
			}
			for _, p := range products[:add] {
				item := a.cart.Add(p)
				fmt.Printf("Added to cart: %s (%s) [%s]\n", item.Name, item.Price, item.ID)
			}
			fmt.Printf("Cart: %d item(s), subtotal %s\n", a.cart.Len(), a.cart.Subtotal())
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "number of products to generate")
	cmd.Flags().IntVar(&add, "add", 0, "add the first N products to the cart")
	return cmd
}
