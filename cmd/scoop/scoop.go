package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/acronis/go-stacktrace"
	slogex "github.com/acronis/go-stacktrace/slogex"
	"github.com/dusted-go/logging/prettylog"
	"github.com/mattn/go-isatty"
	slogformatter "github.com/samber/slog-formatter"
	"github.com/spf13/cobra"

	"github.com/acronis/go-scoop/internal/app/command"
	"github.com/acronis/go-scoop/internal/app/commands/bucketscmd"
	"github.com/acronis/go-scoop/internal/app/commands/licensecmd"
	"github.com/acronis/go-scoop/internal/app/commands/servecmd"
	"github.com/acronis/go-scoop/internal/app/commands/versioncmd"
)

func initLogging(verbose bool) {
	logLvl := func() slog.Level {
		if verbose {
			return slog.LevelDebug
		}
		return slog.LevelInfo
	}()
	w := os.Stderr

	logger := slog.New(
		slogformatter.NewFormatterHandler(
			slogformatter.HTTPRequestFormatter(false),
			slogformatter.HTTPResponseFormatter(false),
			slogformatter.FormatByType(func(s []string) slog.Value {
				return slog.StringValue(strings.Join(s, ","))
			}),
		)(
			prettylog.New(&slog.HandlerOptions{Level: logLvl},
				prettylog.WithDestinationWriter(w),
				func() prettylog.Option {
					if isatty.IsTerminal(w.Fd()) {
						return prettylog.WithColor()
					}
					return func(_ *prettylog.Handler) {}
				}(),
			),
		),
	)
	slog.SetDefault(logger)
}

const (
	verboseFlag = "verbose"
)

func main() {
	os.Exit(mainFn())
}

func mainFn() int {
	var ensureDuplicates bool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := func() *cobra.Command {
		cmd := &cobra.Command{
			Use:           "scoop",
			Short:         "scoop resolves Scoop buckets and renders license and version badges",
			SilenceUsage:  true,
			SilenceErrors: true,
			PersistentPreRun: func(cmd *cobra.Command, _ []string) {
				verbose, err := cmd.Flags().GetBool(verboseFlag)
				if err != nil {
					fmt.Printf("Failed to get verbosity flag: %v\n", err)
					os.Exit(1)
				}

				initLogging(verbose)
			},
			CompletionOptions: cobra.CompletionOptions{
				DisableDefaultCmd: true,
			},
		}

		command.AddConfigFlags(cmd)

		cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "verbose output")
		cmd.Flags().BoolVarP(&ensureDuplicates, "ensure-duplicates", "d", false, "ensure that there are no duplicates in tracebacks")

		cmd.AddCommand(
			servecmd.New(ctx),
			licensecmd.New(ctx),
			versioncmd.New(ctx),
			bucketscmd.New(ctx),
		)
		return cmd
	}()

	if err := rootCmd.Execute(); err != nil {
		var cmdErr *command.Error
		if errors.As(err, &cmdErr) && cmdErr.Inner != nil {
			stOpts := func() []stacktrace.TracesOpt {
				if ensureDuplicates {
					return []stacktrace.TracesOpt{stacktrace.WithEnsureDuplicates()}
				}
				return []stacktrace.TracesOpt{}
			}()

			slog.Error("Command failed", slogex.ErrToSlogAttr(cmdErr.Inner, stOpts...))
		} else {
			fmt.Fprintln(os.Stderr, err)
			_ = rootCmd.Usage()
		}
		return 1
	}

	return 0
}
