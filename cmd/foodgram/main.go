package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"foodgram/internal/app"
	"foodgram/internal/config"
	"foodgram/internal/logging"
	"foodgram/internal/shopping"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	switch os.Args[1] {
	case "load-ingredients":
		cmd := flag.NewFlagSet("load-ingredients", flag.ExitOnError)
		path := cmd.String("path", "data/ingredients.json", "JSON file with the ingredient catalogue")
		cmd.Parse(os.Args[2:])

		res, err := application.LoadIngredients(ctx, *path)
		if err != nil {
			logging.Fatal().Err(err).Msg("ingredient import failed")
		}
		fmt.Printf("Processed %d ingredients: %d created, %d already present, %d skipped.\n",
			res.Processed, res.Created, res.Existing, res.Skipped)

	case "export":
		cmd := flag.NewFlagSet("export", flag.ExitOnError)
		userID := cmd.Int64("user", 0, "ID of the user whose cart is exported")
		format := cmd.String("format", "pdf", "pdf or txt")
		out := cmd.String("out", "", "Output file (defaults to stdout)")
		cmd.Parse(os.Args[2:])

		f, err := shopping.ParseFormat(*format)
		if err != nil {
			logging.Fatal().Err(err).Msg("invalid format")
		}
		doc, err := application.ExportShoppingList(ctx, *userID, f)
		if err != nil {
			logging.Fatal().Err(err).Int64("user_id", *userID).Msg("export failed")
		}
		if err := writeOutput(*out, doc.Body); err != nil {
			logging.Fatal().Err(err).Msg("failed to write shopping list")
		}

	case "issue-token":
		cmd := flag.NewFlagSet("issue-token", flag.ExitOnError)
		userID := cmd.Int64("user", 0, "ID of the user the token is issued for")
		cmd.Parse(os.Args[2:])

		token, err := application.IssueToken(ctx, *userID)
		if err != nil {
			logging.Fatal().Err(err).Int64("user_id", *userID).Msg("failed to issue token")
		}
		fmt.Println(token)

	case "metrics-cleanup":
		cmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cmd.Int("days", cfg.MetricsRetentionDays, "Keep records for the last N days")
		cmd.Parse(os.Args[2:])

		affected, err := application.CleanupMetrics(ctx, *days)
		if err != nil {
			logging.Fatal().Err(err).Msg("cleanup failed")
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func writeOutput(path string, body []byte) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(body)
	return err
}

func printUsage() {
	fmt.Println("Usage: foodgram <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  load-ingredients   Import the ingredient catalogue from JSON")
	fmt.Println("  export             Export a user's shopping list as PDF or text")
	fmt.Println("  issue-token        Print a bearer token for a user")
	fmt.Println("  metrics-cleanup    Remove old export metric records")
}
