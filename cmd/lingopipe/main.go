// Command lingopipe runs the translation service: an HTTP server with a
// browser UI, plus one-shot translate and detect commands for scripting.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lingopipe/lingopipe"
	"github.com/lingopipe/lingopipe/internal/config"
	"github.com/lingopipe/lingopipe/internal/server"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "lingopipe",
		Short:         "Translate text between languages with caching and provider fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .lingopipe.yaml)")

	root.AddCommand(serveCmd(), translateCmd(), detectCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			log := newLogger(cfg)

			srv, err := server.New(cfg, log)
			if err != nil {
				return err
			}

			// Stop on SIGINT/SIGTERM, letting in-flight requests drain.
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-stop
				log.Info().Msg("shutting down")
				if err := srv.Shutdown(); err != nil {
					log.Error().Err(err).Msg("shutdown failed")
				}
			}()

			return srv.Listen()
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}

func translateCmd() *cobra.Command {
	var source, target string

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Defaults.Source
			}
			if target == "" {
				target = cfg.Defaults.Target
			}

			svc, err := server.BuildService(cfg, newLogger(cfg))
			if err != nil {
				return err
			}

			result, err := svc.Translate(cmd.Context(), lingopipe.Request{
				Text:   strings.Join(args, " "),
				Source: source,
				Target: target,
			})
			if err != nil {
				return err
			}

			fmt.Println(result.Text)
			if result.Source != source {
				fmt.Fprintf(os.Stderr, "detected: %s (%s)\n",
					lingopipe.LanguageName(result.Source), result.Source)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "source language code (default: auto)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target language code")
	return cmd
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [text]",
		Short: "Detect the language of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			svc, err := server.BuildService(cfg, newLogger(cfg))
			if err != nil {
				return err
			}

			detection, err := svc.Detect(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s), confidence %.2f\n",
				lingopipe.LanguageName(detection.Lang), detection.Lang, detection.Confidence)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(lingopipe.FullVersion())
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
