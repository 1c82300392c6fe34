// Command genstream sends one prompt to the Gemini API and streams the
// answer to stdout.
//
// Usage:
//
//	GEMINI_API_KEY=... genstream [flags] [prompt...]
//
// The prompt is read from stdin when no arguments are given. Text is
// printed as it arrives; with --render the aggregated response is rendered
// as styled markdown once the stream ends. Settings are taken from flags,
// then GEMINI_API_KEY, then the YAML config file (.genstream.yaml by
// default).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/genstream"
	"github.com/fwojciec/genstream/gemini"
	"github.com/fwojciec/genstream/zerolog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "genstream: %v\n", err)
		os.Exit(1)
	}
}

// providerFunc builds the provider for a resolved config.
type providerFunc func(cfg config, logger genstream.Logger) genstream.Provider

func geminiProvider(cfg config, logger genstream.Logger) genstream.Provider {
	opts := []gemini.Option{gemini.WithLogger(logger)}
	if cfg.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, gemini.WithModel(cfg.Model))
	}
	return gemini.New(cfg.APIKey, opts...)
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	return newRootCmdWithProvider(stdin, stdout, stderr, getenv, geminiProvider)
}

func newRootCmdWithProvider(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string, newProvider providerFunc) *cobra.Command {
	var (
		flags       config
		configPath  string
		temperature float64
	)

	cmd := &cobra.Command{
		Use:           "genstream [flags] [prompt...]",
		Short:         "Stream a Gemini response to the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := make(map[string]bool)
			cmd.Flags().Visit(func(f *pflag.Flag) { set[f.Name] = true })
			if set["temperature"] {
				flags.Temperature = &temperature
			}

			file, err := loadConfigFile(configPath)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(file, flags, set, getenv("GEMINI_API_KEY"))
			if err != nil {
				return err
			}

			base, err := newLogger(cfg, stderr)
			if err != nil {
				return err
			}
			logger := base.With("request_id", uuid.NewString())

			prompt, err := readPrompt(args, stdin)
			if err != nil {
				return err
			}

			provider := newProvider(cfg, logger)
			return runPrompt(cmd.Context(), provider, cfg, prompt, stdout, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.Model, "model", "", "Model ID (default: gemini-2.5-flash)")
	f.StringVar(&flags.APIKey, "api-key", "", "API key (overrides GEMINI_API_KEY)")
	f.StringVar(&flags.BaseURL, "base-url", "", "API base URL")
	f.StringVar(&configPath, "config", defaultConfigPath, "Path to YAML config file")
	f.StringVar(&flags.System, "system", "", "System instruction")
	f.Float64Var(&temperature, "temperature", 0, "Sampling temperature in [0, 2]")
	f.IntVar(&flags.MaxTokens, "max-tokens", 0, "Maximum output tokens")
	f.BoolVar(&flags.Render, "render", false, "Render the final response as styled markdown")
	f.IntVar(&flags.Width, "width", defaultWidth, "Render width in columns")
	f.StringVar(&flags.LogLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	f.StringVar(&flags.LogFormat, "log-format", defaultLogFormat, "Log format: console, json")
	return cmd
}

func newLogger(cfg config, w io.Writer) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.LogFormat == "json" {
		return zerolog.New(w, level), nil
	}
	return zerolog.NewConsole(w, level), nil
}

// readPrompt joins args, or reads stdin when there are none.
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("empty prompt: pass it as arguments or on stdin")
	}
	return prompt, nil
}
