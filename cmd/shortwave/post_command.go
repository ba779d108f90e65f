package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"shortwave/internal/archive"
	"shortwave/internal/bluesky"
	"shortwave/internal/broadcast"
	"shortwave/internal/deps"
	"shortwave/internal/logging"
	"shortwave/internal/media"
	"shortwave/internal/notifications"
	"shortwave/internal/pipeline"
	"shortwave/internal/runlock"
	"shortwave/internal/services"
	"shortwave/internal/synth"
)

func newPostCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var seed int64

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Generate a broadcast and publish it to Bluesky",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			if missing := deps.MissingRequired(deps.CheckBinaries(deps.Required(cfg))); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s (run 'shortwave deps' for details)", strings.Join(missing, ", "))
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lock := runlock.New(cfg.Paths.WorkDir)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			var store *archive.Store
			if cfg.Archive.Enabled {
				store, err = archive.Open(cfg)
				if err != nil {
					return fmt.Errorf("open archive: %w", err)
				}
				defer store.Close()
			}

			client := bluesky.NewClient(bluesky.Config{
				ServiceURL:      cfg.Bluesky.ServiceURL,
				VideoServiceURL: cfg.Bluesky.VideoServiceURL,
			})
			notifier := notifications.NewService(cfg)
			pub := pipeline.New(cfg, logger, synth.New(cfg), media.New(cfg), client, store, notifier)

			out := cmd.OutOrStdout()
			if ok, roll := pub.ShouldPost(force); !ok {
				fmt.Fprintf(out, "No luck this time! (rolled %.4f against chance %.4f)\n", roll, cfg.Bluesky.PostChance)
				return nil
			}

			genOpts := []broadcast.Option{}
			if cmd.Flags().Changed("seed") {
				genOpts = append(genOpts, broadcast.WithRand(rand.New(rand.NewSource(seed))))
			}
			gen := broadcast.NewGenerator(broadcast.DefaultVocabulary(), genOpts...)
			msg := gen.Generate()

			result, err := pub.Run(cmd.Context(), msg)
			if errors.Is(err, services.ErrUnsupportedLanguage) {
				fmt.Fprintf(out, "Skipped broadcast with unsupported language %q\n", msg.Language)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Posted %s broadcast (%d chars, %.1fs audio)\n", msg.Language, msg.CharCount(), result.DurationSeconds)
			if result.PostURI != "" {
				fmt.Fprintln(out, result.PostURI)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Bypass the posting chance gate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed the broadcast generator for reproducible output")
	return cmd
}
