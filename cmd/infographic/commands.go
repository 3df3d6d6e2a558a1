package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"infographic/internal/adapter/repo"
	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/providers/image"
	"infographic/internal/storage"
	"infographic/pkg/zip"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "infographic",
		Usage: "Offline tooling for the infographic API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "environment name, controls log formatting",
				Sources: cli.EnvVars("APP_ENV"),
				Value:   "development",
			},
		},
		Commands: []*cli.Command{
			renderCmd(),
			migrateCmd(),
			exportCmd(),
		},
	}
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the poster locally and write it as PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file",
				Value:   "infographic.png",
			},
			&cli.StringFlag{
				Name:    "font",
				Usage:   "TrueType font used for all text",
				Sources: cli.EnvVars("POSTER_FONT_PATH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := infra.NewLogger(cmd.String("env"))
			renderer := image.NewPosterRenderer(cmd.String("font"), logger)
			img, err := renderer.Produce(ctx)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			out := cmd.String("out")
			if err := os.WriteFile(out, img.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logger.Info().Str("out", out).Int("bytes", len(img.Data)).
				Bool("fallback_font", renderer.UsesFallbackFont()).Msg("poster written")
			return nil
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations to DATABASE_URL",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := infra.NewLogger(cmd.String("env"))
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.StoreDriver != infra.StoreDriverPostgres {
				return fmt.Errorf("migrate: STORE_DRIVER is %q, nothing to migrate", cfg.StoreDriver)
			}
			pool, err := infra.NewDBPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			_, err = infra.Migrate(pool, logger)
			return err
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write stored infographics out as PNG files or a zip archive",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Usage: "directory receiving one <id>.png per infographic"},
			&cli.StringFlag{Name: "zip", Usage: "zip archive to write instead of a directory"},
			&cli.IntFlag{Name: "limit", Usage: "maximum number of infographics (1-100)", Value: maxExportLimit},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, archive := strings.TrimSpace(cmd.String("dir")), strings.TrimSpace(cmd.String("zip"))
			if (dir == "") == (archive == "") {
				return errors.New("export: set exactly one of --dir or --zip")
			}
			logger := infra.NewLogger(cmd.String("env"))
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.StoreDriver != infra.StoreDriverPostgres {
				return fmt.Errorf("export: STORE_DRIVER is %q, nothing to export", cfg.StoreDriver)
			}
			pool, err := infra.NewDBPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			items, err := repo.NewInfographicRepository(infra.NewSQLRunner(pool, logger)).List(ctx, exportLimit(int(cmd.Int("limit"))))
			if err != nil {
				return err
			}
			n, dest, err := exportInfographics(ctx, items, dir, archive)
			if err != nil {
				return err
			}
			logger.Info().Int("exported", n).Str("destination", dest).Msg("export complete")
			return nil
		},
	}
}

const maxExportLimit = 100

// exportLimit clamps --limit to (0, maxExportLimit], matching the list route.
func exportLimit(n int) int {
	if n <= 0 || n > maxExportLimit {
		return maxExportLimit
	}
	return n
}

// exportInfographics decodes each record's data URI and writes it to dir, or
// bundles everything into the archive file. It returns the number written and
// where they went.
func exportInfographics(ctx context.Context, items []domain.Infographic, dir, archive string) (int, string, error) {
	entries := make([]zip.Entry, 0, len(items))
	for _, item := range items {
		_, data, err := image.DecodeDataURI(item.ImageBase64)
		if err != nil {
			return 0, "", fmt.Errorf("export %s: %w", item.ID, err)
		}
		entries = append(entries, zip.Entry{Name: item.ID + ".png", Modified: item.Timestamp, Data: data})
	}

	if archive != "" {
		data, err := zip.Archive(entries)
		if err != nil {
			return 0, "", err
		}
		if err := os.WriteFile(archive, data, 0o644); err != nil {
			return 0, "", fmt.Errorf("write %s: %w", archive, err)
		}
		return len(entries), archive, nil
	}

	store, err := storage.NewFileStore(dir)
	if err != nil {
		return 0, "", err
	}
	for _, e := range entries {
		if _, err := store.Write(ctx, e.Name, e.Data); err != nil {
			return 0, "", err
		}
	}
	return len(entries), store.BasePath(), nil
}
