package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shortwave/internal/archive"
	"shortwave/internal/broadcast"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently posted broadcasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Archive.Enabled {
				fmt.Fprintln(out, "Archive is disabled; enable [archive] in the configuration to record history")
				return nil
			}

			store, err := archive.Open(cfg)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No broadcasts recorded yet")
				return nil
			}

			title := fmt.Sprintf("Broadcast History (%d)", len(entries))
			if shouldColorize(out) {
				title = ansiBlue + title + ansiReset
			}
			fmt.Fprintln(out, title)

			headers := []string{"ID", "POSTED", "LANGUAGE", "CHARS", "DURATION", "EMBED", "URI"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				duration := ""
				if entry.DurationSeconds > 0 {
					duration = fmt.Sprintf("%.1fs", entry.DurationSeconds)
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					languageLabel(entry.Language),
					strconv.Itoa(entry.CharCount),
					duration,
					entry.EmbedKind,
					entry.PostURI,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, 0, 3, 4))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of broadcasts to show")
	return cmd
}

var languageNames = map[string]string{
	string(broadcast.LanguageEnglish): "english",
	string(broadcast.LanguageItalian): "italian",
	string(broadcast.LanguageGerman):  "german",
	string(broadcast.LanguageRussian): "russian",
	string(broadcast.LanguageChinese): "chinese",
	string(broadcast.LanguageMorse):   "morse",
}

func languageLabel(code string) string {
	name, ok := languageNames[code]
	if !ok {
		name = code
	}
	return cases.Title(language.Und).String(name)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
