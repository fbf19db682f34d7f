package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"tmap-route-service/internal/adapters/tmap"
	"tmap-route-service/internal/config"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/platform/logger"
	"tmap-route-service/internal/render"
	"tmap-route-service/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// routecli runs one lookup from the terminal:
//
//	routecli -from 서울역 -to 강남역 -out route.html
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("routecli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "departure POI keyword")
	to := fs.String("to", "", "destination POI keyword")
	out := fs.String("out", "route.html", "path of the map document to write")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*from) == "" || strings.TrimSpace(*to) == "" {
		fmt.Fprintln(stderr, "both -from and -to are required")
		fs.Usage()
		return 2
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log, err := logger.New(cfg.AppEnv, "routecli")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := lookup(context.Background(), cfg, log, *from, *to, *out, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, domain.UserMessage(err))
		log.Debug("lookup failed", zap.Error(err))
		return 1
	}

	return 0
}

func lookup(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	from, to, outPath string,
	stdout, stderr io.Writer,
) error {
	provider, err := tmap.NewTmapProvider(cfg, log)
	if err != nil {
		return err
	}

	svc, err := services.NewRouteLookupService(provider, cfg, log)
	if err != nil {
		return err
	}

	renderer, err := render.NewRenderer(cfg.APIKey)
	if err != nil {
		return err
	}

	res, err := svc.Lookup(ctx, from, to)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outPath, err)
	}
	renderErr := renderer.RenderMap(f, res.Map)
	closeErr := f.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		return fmt.Errorf("write map %q: %w", outPath, err)
	}

	for _, line := range res.Summary() {
		fmt.Fprintln(stdout, line)
	}
	for _, msg := range res.Errors() {
		fmt.Fprintln(stderr, msg)
	}
	fmt.Fprintf(stdout, "map: %s\n", outPath)

	return nil
}
