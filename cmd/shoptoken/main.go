// Command shoptoken installs and removes store access tokens in the credential store
// read by the gateway when CREDENTIAL_SOURCE=postgres.
//
//	shoptoken install -store <store_id> -token <access_token>
//	shoptoken uninstall -store <store_id>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/bhrigu136/shopify-ai-analytics/internal/config"
	"github.com/bhrigu136/shopify-ai-analytics/internal/database"
	"github.com/bhrigu136/shopify-ai-analytics/internal/database/migration"
	"github.com/bhrigu136/shopify-ai-analytics/internal/logging"
	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository"
	"github.com/bhrigu136/shopify-ai-analytics/internal/repository/postgres"
	"github.com/bhrigu136/shopify-ai-analytics/internal/tokencrypt"
)

const commandTimeout = 30 * time.Second

var errUsage = errors.New("usage: shoptoken install -store <id> -token <token> | shoptoken uninstall -store <id>")

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.Location(), cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], cfg, logger, os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, errUsage)
			os.Exit(2)
		}
		logger.Fatal().Err(err).Msg("shoptoken failed")
	}
}

// command is a parsed invocation.
type command struct {
	name    string
	storeID string
	token   string
}

func parseArgs(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}

	cmd := command{name: args[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.storeID, "store", "", "store id")
	fs.StringVar(&cmd.token, "token", "", "store access token (install only)")
	if err := fs.Parse(args[1:]); err != nil {
		return command{}, err
	}

	if strings.TrimSpace(cmd.storeID) == "" {
		return command{}, errUsage
	}
	switch cmd.name {
	case "install":
		if strings.TrimSpace(cmd.token) == "" {
			return command{}, errUsage
		}
	case "uninstall":
	default:
		return command{}, errUsage
	}
	return cmd, nil
}

func run(ctx context.Context, args []string, cfg *config.AppConfig, logger zerolog.Logger, out io.Writer) error {
	cmd, err := parseArgs(args)
	if err != nil {
		return err
	}

	key, err := tokencrypt.ParseKey(cfg.Credentials.EncryptionKey)
	if err != nil {
		return err
	}
	cipher, err := tokencrypt.New(key)
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	return execute(ctx, cmd, postgres.NewCredentialPostgres(db, cipher), out)
}

func execute(ctx context.Context, cmd command, repo repository.CredentialRepository, out io.Writer) error {
	switch cmd.name {
	case "install":
		saved, err := repo.Save(ctx, &model.ShopToken{StoreID: cmd.storeID, Token: cmd.token})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "installed token for %s (installed_at=%s)\n", saved.StoreID, saved.InstalledAt.Format(time.RFC3339))
	case "uninstall":
		if err := repo.Delete(ctx, cmd.storeID); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed token for %s\n", cmd.storeID)
	}
	return nil
}
