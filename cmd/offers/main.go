package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/offerly-hq/offers-sdk-go/internal/batchfile"
	"github.com/offerly-hq/offers-sdk-go/internal/config"
	"github.com/offerly-hq/offers-sdk-go/internal/logger"
	"github.com/offerly-hq/offers-sdk-go/internal/statestore"
	"github.com/offerly-hq/offers-sdk-go/pkg/offers"
)

var (
	clientFile string
	stateStore string
	logLevel   string
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "offers: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "offers: load config: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "offers",
		Short: "CLI for the Offers service: register products and fetch offers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logger.Init(logLevel)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&clientFile, "client-file", cfg.ClientFile, "Path to the persisted client state")
	rootCmd.PersistentFlags().StringVar(&stateStore, "state-store", cfg.StateStore, "State store backend (file or bbolt)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newRegisterBatchCmd())
	rootCmd.AddCommand(newGetOffersCmd())
	rootCmd.AddCommand(newGetOffersBatchCmd())

	return rootCmd
}

// withClient loads the persisted client, runs fn, and saves the (possibly
// re-authenticated) state back so later invocations reuse the token.
func withClient(fn func(c *offers.Client) error) error {
	store, err := statestore.NewStore(stateStore, clientFile)
	if err != nil {
		return err
	}
	defer store.Close()

	state, found, err := store.Load()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no client state at %q; create one first (see README)", clientFile)
	}
	if err := state.Validate(); err != nil {
		return err
	}

	client, err := offers.FromState(state, offers.Config{Logger: logger.Object{}})
	if err != nil {
		return err
	}

	runErr := fn(client)

	if err := store.Save(client.State()); err != nil {
		logger.WarnObj("failed to persist client state", "error", err.Error())
	}
	return runErr
}

func newRegisterCmd() *cobra.Command {
	var id, name, description string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a single product",
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid --id: %w", err)
			}

			return withClient(func(c *offers.Client) error {
				outcome, err := c.RegisterProduct(cmd.Context(), offers.Product{
					ID:          productID,
					Name:        name,
					Description: description,
				})
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", productID, outcome)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Product UUID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Product name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Product description (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newRegisterBatchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "register-batch",
		Short: "Register multiple products from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := batchfile.Products(file)
			if err != nil {
				return err
			}

			return withClient(func(c *offers.Client) error {
				outcomes, err := c.RegisterProducts(cmd.Context(), products)
				for i, p := range products {
					if i < len(outcomes) {
						fmt.Printf("%s: %s\n", p.ID, outcomes[i])
					}
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON/YAML list of products (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newGetOffersCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get-offers",
		Short: "Fetch offers for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid --id: %w", err)
			}

			return withClient(func(c *offers.Client) error {
				result, err := c.GetOffers(cmd.Context(), productID)
				if err != nil {
					return err
				}
				printOffers(productID, result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Product UUID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newGetOffersBatchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "get-offers-batch",
		Short: "Fetch offers for multiple products from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := batchfile.IDs(file)
			if err != nil {
				return err
			}

			return withClient(func(c *offers.Client) error {
				results, err := c.OffersBatch(cmd.Context(), ids)
				for i, id := range ids {
					if i < len(results) {
						printOffers(id, results[i])
					}
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON/YAML list of product UUIDs (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func printOffers(productID uuid.UUID, result []offers.Offer) {
	fmt.Printf("Offers for product %s (%d):\n", productID, len(result))
	for _, offer := range result {
		fmt.Printf("  %s\n", offer)
	}
}
