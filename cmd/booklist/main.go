package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"booklist/internal/catalog"
	"booklist/internal/config"
	"booklist/internal/listing"
	"booklist/internal/platform/cache"
	"booklist/internal/platform/logger"
	"booklist/internal/platform/openlibrary"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	subject string
	limit   int
	timeout time.Duration

	author   string
	sortKey  string
	sortDir  string
	page     int
	pageSize int

	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "booklist",
	Short: "Browse the Open Library subject listing from the terminal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnvFiles()
		cfg = config.Load()
		level := cfg.App.LogLevel
		if verbose {
			level = "debug"
		}
		log = logger.New("development", level)
		return nil
	},
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch the listing once and print one page of it",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&subject, "subject", "", "Open Library subject (default: OPENLIBRARY_SUBJECT or science_fiction)")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0, "Number of works to fetch, at most 100 (default: OPENLIBRARY_LIMIT or 100)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Fetch timeout")

	listCmd.Flags().StringVarP(&author, "author", "a", "", "Case-insensitive author search")
	listCmd.Flags().StringVarP(&sortKey, "sort", "s", string(listing.DefaultSortKey), "Sort column")
	listCmd.Flags().StringVarP(&sortDir, "dir", "d", string(listing.Ascending), "Sort direction: ascending or descending")
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	listCmd.Flags().IntVarP(&pageSize, "page-size", "n", listing.DefaultPageSize, "Books per page: 10, 50 or 100")

	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	state, err := stateFromFlags(author, sortKey, sortDir, page, pageSize)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	source, closeSource := newSource(ctx)
	defer closeSource()

	loader := catalog.NewLoader(source, nil, catalog.Config{
		Subject: firstNonEmpty(subject, cfg.OpenLibrary.Subject),
		Limit:   firstPositive(limit, cfg.OpenLibrary.Limit),
	}, log)

	// A failed fetch is logged by the loader and shows up as an empty listing.
	_ = loader.Load(ctx)

	result := listing.Apply(loader.Records(), state)
	fmt.Fprintln(cmd.OutOrStdout(), renderPage(result))
	return nil
}

// newSource returns the subject source and a func releasing what it opened.
func newSource(ctx context.Context) (catalog.Source, func()) {
	client := openlibrary.NewClient(openlibrary.Options{
		BaseURL:    cfg.OpenLibrary.BaseURL,
		UserAgent:  cfg.OpenLibrary.UserAgent,
		RPS:        cfg.OpenLibrary.RPS,
		MaxRetries: cfg.OpenLibrary.MaxRetries,
		Timeout:    cfg.OpenLibrary.Timeout,
	})
	if cfg.Redis.Addr == "" {
		return client, func() {}
	}
	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		log.Debug().Err(err).Msg("redis unavailable, fetching directly")
		_ = redisCache.Close()
		return client, func() {}
	}
	return catalog.NewCachedSource(client, redisCache, cfg.Redis.TTL, log), func() {
		if err := redisCache.Close(); err != nil {
			log.Debug().Err(err).Msg("close redis")
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
