package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Gunvolt24/wb_cart/config"
	"github.com/Gunvolt24/wb_cart/internal/app"
	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/tui"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
)

// Витрина с корзиной в терминале. По умолчанию корзина хранится в SQLite-файле,
// поэтому переживает перезапуск, как localStorage — перезагрузку страницы.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	driver := flag.String("storage", app.DriverSQLite, "slot storage: memory|sqlite|postgres")
	dbPath := flag.String("db", cfg.Storage.SQLitePath, "sqlite file for the cart")
	catalogPath := flag.String("catalog", cfg.Catalog.Path, "products YAML (empty = built-in)")
	flag.Parse()

	cfg.Storage.Driver = *driver
	cfg.Storage.SQLitePath = *dbPath
	cfg.Catalog.Path = *catalogPath

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cart-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// логи в файл: терминал занят интерфейсом
	logg, closeLog, err := logger.NewZapFileLogger(cfg.Logger.IsProd, cfg.UI.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	products, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	slots, closeStorage, err := app.OpenStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeStorage()

	screen := tui.NewScreen()
	cart := usecase.NewCartManager(slots, screen, screen, logg,
		usecase.WithStorageKey(cfg.Storage.Key),
		usecase.WithCatalog(products),
	)
	cart.Init(ctx)

	model := tui.New(ctx, cart, screen, products.Products(), cfg.UI.ToastDelay)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
