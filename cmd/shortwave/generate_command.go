package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"shortwave/internal/broadcast"
	"shortwave/internal/synth"
)

func newGenerateCommand() *cobra.Command {
	var seed int64
	var decode bool
	var markers bool

	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Generate a broadcast and print it without posting",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab := broadcast.DefaultVocabulary()
			opts := []broadcast.Option{}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, broadcast.WithRand(rand.New(rand.NewSource(seed))))
			}
			gen := broadcast.NewGenerator(vocab, opts...)
			msg := gen.Generate()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, msg.Text)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Language: %s\n", msg.Language)
			fmt.Fprintf(out, "Character count: %d\n", msg.CharCount())

			if markers {
				fmt.Fprintf(out, "Markers: %s\n", gen.Markers())
			}
			if decode && msg.Language == broadcast.LanguageMorse {
				code, err := synth.ExtractMorse(msg.Text)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Decoded: %s\n", vocab.DecodeMorse(code))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed the broadcast generator for reproducible output")
	cmd.Flags().BoolVar(&decode, "decode", false, "Decode the Morse payload when present")
	cmd.Flags().BoolVar(&markers, "markers", false, "Append a beta-marker burst line")
	return cmd
}
