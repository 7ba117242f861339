package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/adapters/observability"
	"nyt_movies/internal/app"
	"nyt_movies/internal/domain"
	"nyt_movies/internal/shared"
	"nyt_movies/internal/tui"
)

var (
	baseURL string
	apiKey  string
	query   string
	appEnv  string
	logFile string

	api     domain.MovieAPI
	logSink *os.File
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout)
}

// run executes the command line in args and closes the log file, if any,
// once the command returns.
func run(ctx context.Context, args []string, out io.Writer) error {
	logSink = nil
	defer func() {
		if logSink != nil {
			_ = logSink.Close()
		}
	}()

	root := &cobra.Command{
		Use:           "browse",
		Short:         "Browse New York Times movie reviews and critics",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if !cmd.Flags().Changed("base-url") {
				baseURL = cfg.NYTBase
			}
			if !cmd.Flags().Changed("api-key") {
				apiKey = cfg.NYTKey
			}
			if !cmd.Flags().Changed("env") {
				appEnv = cfg.AppEnv
			}

			// the TUI owns the terminal, so it only logs to a file
			var w io.Writer = os.Stderr
			if !cmd.HasParent() {
				w = io.Discard
			}
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				w = f
				logSink = f
			}
			log.Logger = observability.NewLoggerTo(w, appEnv)

			client, err := nyt.New(baseURL, apiKey, cfg.NYTRPS)
			if err != nil {
				return err
			}
			api = client
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := app.NewBrowser(api)
			b.SetQuery(query)
			log.Info().Str("base", baseURL).Str("query", query).Msg("browser starting")
			_, err := tea.NewProgram(tui.New(cmd.Context(), b), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "base-url", nyt.DefaultBase, "NYT API or api server base URL")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "", "NYT API key (default $NYT_API_KEY; leave empty behind the api server)")
	root.PersistentFlags().StringVarP(&query, "query", "q", "", "initial search text")
	root.PersistentFlags().StringVar(&appEnv, "env", "prod", "dev for human-readable debug logs")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	root.AddCommand(listCmd())
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}
