// Package cli provides the Cobra-based CLI for storefront.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront/domain"
	"storefront/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "storefront",
		Short: "A retail inventory and ordering system",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject catalog
			if catalog != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			var err error
			catalog, err = store.Load(viper.GetString("catalog"))
			return err
		},
	}

	catalog *store.Catalog

	heading  = color.New(color.FgCyan, color.Bold)
	received = color.New(color.FgGreen, color.Bold)
)

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "catalog seed file (JSON), built-in inventory if empty")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("STOREFRONT")
	viper.AutomaticEnv()

	// list
	var sortByPrice bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := catalog.ListActiveProducts(context.Background())
			if err != nil {
				return err
			}
			if sortByPrice {
				domain.ByPrice(products)
			}
			printProducts(products)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&sortByPrice, "sort-by-price", false, "sort by ascending unit price")
	rootCmd.AddCommand(listCmd)

	// total
	totalCmd := &cobra.Command{
		Use:   "total",
		Short: "Show the total amount of items in store",
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := catalog.TotalActiveQuantity(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Total of %d items in store\n", total)
			return nil
		},
	}
	rootCmd.AddCommand(totalCmd)

	// order
	orderCmd := &cobra.Command{
		Use:   "order <name>:<quantity> ...",
		Short: "Execute a multi-item order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			lines := make([]store.OrderLine, 0, len(args))
			for _, item := range args {
				name, quantity, err := parseItem(item)
				if err != nil {
					return err
				}
				p, err := catalog.FindProduct(ctx, name)
				if err != nil {
					return err
				}
				lines = append(lines, store.OrderLine{Product: p, Quantity: quantity})
			}

			start := time.Now()
			receipt, err := catalog.ExecuteOrder(ctx, lines)
			if err != nil {
				slog.Error("order failed", "lines", len(lines), "error", err)
				return err
			}
			slog.Info("order executed",
				"order_id", receipt.ID,
				"lines", len(receipt.Lines),
				"total", receipt.Total.String(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			printReceipt(receipt)
			return nil
		},
	}
	rootCmd.AddCommand(orderCmd)

	// promo
	promoCmd := &cobra.Command{
		Use:   "promo",
		Short: "Manage product promotions",
	}
	var promoProduct, promoName string
	promoSetCmd := &cobra.Command{
		Use:   "set",
		Short: "Attach a promotion to a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if promoProduct == "" || promoName == "" {
				return errors.New("--product and --promotion required")
			}
			p, err := catalog.FindProduct(context.Background(), promoProduct)
			if err != nil {
				return err
			}
			promo, ok := catalog.Promotion(promoName)
			if !ok {
				return fmt.Errorf("unknown promotion: %q", promoName)
			}
			p.SetPromotion(promo)
			fmt.Printf("%s now has promotion %q\n", p.Name(), promo.Name())
			return nil
		},
	}
	promoSetCmd.Flags().StringVar(&promoProduct, "product", "", "product name")
	promoSetCmd.Flags().StringVar(&promoName, "promotion", "", "promotion name")
	promoCmd.AddCommand(promoSetCmd)

	var clearProduct string
	promoClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Detach a product's promotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearProduct == "" {
				return errors.New("--product required")
			}
			p, err := catalog.FindProduct(context.Background(), clearProduct)
			if err != nil {
				return err
			}
			p.SetPromotion(nil)
			fmt.Printf("%s no longer has a promotion\n", p.Name())
			return nil
		},
	}
	promoClearCmd.Flags().StringVar(&clearProduct, "product", "", "product name")
	promoCmd.AddCommand(promoClearCmd)
	rootCmd.AddCommand(promoCmd)

	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive store menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.InOrStdin())
		},
	}
	rootCmd.AddCommand(shellCmd)
}

// parseItem splits "<name>:<quantity>"; the name may contain colons, the
// quantity follows the last one.
func parseItem(item string) (string, int, error) {
	i := strings.LastIndex(item, ":")
	if i <= 0 || i == len(item)-1 {
		return "", 0, fmt.Errorf("invalid item %q: want <name>:<quantity>", item)
	}
	quantity, err := strconv.Atoi(item[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity in item %q: %w", item, err)
	}
	return item[:i], quantity, nil
}

func printProducts(products []domain.Product) {
	fmt.Println("------")
	for i, p := range products {
		fmt.Printf("%d. %s\n", i+1, p.Describe())
	}
	fmt.Println("------")
}

func printReceipt(receipt *store.Receipt) {
	for _, line := range receipt.Lines {
		fmt.Printf("  %dx %s: $%s\n", line.Quantity, line.Product, line.Total)
	}
	fmt.Println(received.Sprintf("Order %s made! Total payment: $%s", receipt.ID, receipt.Total))
}

func runShell(in io.Reader) error {
	r := bufio.NewReader(in)
	ctx := context.Background()
	for {
		fmt.Println()
		fmt.Println(heading.Sprint("   Store Menu"))
		fmt.Println(heading.Sprint("   ----------"))
		fmt.Println("1. List all products in store")
		fmt.Println("2. Show total amount in store")
		fmt.Println("3. Make an order")
		fmt.Println("4. Quit")
		fmt.Print("Please choose a number: ")

		line, err := r.ReadString('\n')
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(line) {
		case "1":
			products, err := catalog.ListActiveProducts(ctx)
			if err != nil {
				return err
			}
			printProducts(products)
		case "2":
			total, err := catalog.TotalActiveQuantity(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nTotal of %d items in store\n", total)
		case "3":
			if err := shellOrder(ctx, r); err != nil {
				return err
			}
		case "4":
			fmt.Println("Thank you for visiting. Goodbye!")
			return nil
		default:
			fmt.Println("Error with your choice! Try again!")
		}
	}
}

// shellOrder collects order lines interactively; an empty product choice
// finishes the order.
func shellOrder(ctx context.Context, r *bufio.Reader) error {
	products, err := catalog.ListActiveProducts(ctx)
	if err != nil {
		return err
	}

	var lines []store.OrderLine
	for {
		printProducts(products)
		fmt.Println("When you want to finish the order, enter empty text.")
		fmt.Print("Which product # do you want? ")
		choice, err := r.ReadString('\n')
		if err != nil {
			break
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			break
		}
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(products) {
			fmt.Println("Invalid product number.")
			continue
		}

		fmt.Print("What amount do you want? ")
		amount, err := r.ReadString('\n')
		if err != nil {
			break
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			fmt.Println("Error adding product!")
			continue
		}
		if quantity <= 0 {
			fmt.Println("Quantity must be greater than 0.")
			continue
		}

		lines = append(lines, store.OrderLine{Product: products[idx-1], Quantity: quantity})
		fmt.Println("Product added to list!")
	}

	if len(lines) == 0 {
		return nil
	}
	receipt, err := catalog.ExecuteOrder(ctx, lines)
	if err != nil {
		slog.Error("order failed", "lines", len(lines), "error", err)
		fmt.Printf("Error processing order: %v\n", err)
		return nil
	}
	slog.Info("order executed",
		"order_id", receipt.ID,
		"lines", len(receipt.Lines),
		"total", receipt.Total.String(),
	)
	fmt.Println("********")
	printReceipt(receipt)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
