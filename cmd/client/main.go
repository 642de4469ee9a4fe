package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/ignitegym/internal/buildinfo"
	"github.com/dmitrijs2005/ignitegym/internal/client/avatar"
	"github.com/dmitrijs2005/ignitegym/internal/client/cli"
	"github.com/dmitrijs2005/ignitegym/internal/client/client"
	"github.com/dmitrijs2005/ignitegym/internal/client/config"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
	"github.com/dmitrijs2005/ignitegym/internal/client/services"
	"github.com/dmitrijs2005/ignitegym/internal/client/session"
	"github.com/dmitrijs2005/ignitegym/internal/client/storage"
	"github.com/dmitrijs2005/ignitegym/internal/filex"
	"github.com/dmitrijs2005/ignitegym/internal/logging"

	_ "modernc.org/sqlite"
)

const appName = "ignitegym"

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	dataDir, err := filex.DataDir(appName)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(dataDir, "client.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.NewTextLogger(logFile, cfg.SlogLevel())

	db, err := client.InitDatabase(ctx, filex.Resolve(dataDir, cfg.DatabasePath))
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	if err != nil {
		return err
	}
	defer api.Close()

	notifier := notify.NewWriterNotifier(os.Stdout)

	store := session.NewStore(api, storage.NewSQLiteStorage(db, logger), notifier, logger)
	store.Restore(ctx)

	var uploader avatar.Uploader
	if cfg.Avatar.Enabled() {
		s3c, err := avatar.NewS3Client(ctx, avatar.S3Config{
			Bucket:    cfg.Avatar.Bucket,
			Region:    cfg.Avatar.Region,
			Endpoint:  cfg.Avatar.Endpoint,
			AccessKey: cfg.Avatar.AccessKey,
			SecretKey: cfg.Avatar.SecretKey,
			PublicURL: cfg.Avatar.PublicURL,
		})
		if err != nil {
			return err
		}
		uploader = avatar.NewS3Uploader(s3c, cfg.Avatar.Bucket, cfg.Avatar.PublicURL, logger)
	}

	app := cli.NewApp(cli.Deps{
		Session: store,
		Profile: services.NewProfileService(store, api, uploader, notifier, logger),
		Catalog: services.NewCatalogService(api, notifier, logger),
		Avatars: avatar.NewGate(notifier, logger),
		Log:     logger,
	})

	logger.Info(ctx, "client started", "server", cfg.ServerURL)
	app.Run(ctx)
	return nil
}
