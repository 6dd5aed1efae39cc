package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dailytemp/config"
	"dailytemp/manager"
	"dailytemp/metrics"
	"dailytemp/report"
)

const exitFailure = 1

var ErrUsage = errors.New("invalid arguments")

// negativeNumber matches arguments such as "-33.8688,151.2093" that pflag
// would otherwise read as a cluster of shorthand flags.
var negativeNumber = regexp.MustCompile(`^-\.?\d`)

// Factory builds the forecast pipeline once flags have been applied to cfg.
type Factory func(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (manager.Weather, error)

func New(cfg *config.Config, factory Factory) (*cobra.Command, error) {
	if cfg == nil || factory == nil {
		return nil, fmt.Errorf("cli: config and factory are required")
	}

	cmd := &cobra.Command{
		Use:   "dailytemp <latitude,longitude>",
		Short: "CLI application for getting daily min/max temperatures of a location",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected one location argument, got %d", ErrUsage, len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, factory, args[0])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", ErrUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVar(&cfg.Report.Units, "units", cfg.Report.Units, "temperature units: fahrenheit, celsius or source")
	flags.StringVar(&cfg.Report.Format, "format", cfg.Report.Format, "report format: text, json or yaml")
	flags.DurationVar(&cfg.HTTP.Timeout, "timeout", cfg.HTTP.Timeout, "timeout of each upstream request")
	flags.StringVar(&cfg.Timezone.Provider, "timezone-provider", cfg.Timezone.Provider, "timezone lookup: geonames or offline")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.Metrics.Textfile, "metrics-file", cfg.Metrics.Textfile, "write Prometheus metrics to this file after the run")

	return cmd, nil
}

func run(cmd *cobra.Command, cfg *config.Config, factory Factory, rawLocation string) error {
	ctx := cmd.Context()

	location, err := manager.ParseLocation(rawLocation)
	if err != nil {
		return err
	}

	if err = cfg.Validate(); err != nil {
		return err
	}

	// both already checked by Validate
	units, _ := report.ParseUnits(cfg.Report.Units)
	format, _ := report.ParseFormat(cfg.Report.Format)

	logger := cfg.NewLogger(cmd.ErrOrStderr())

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
				logger.WarnContext(ctx, "Metrics were not exported", "error", err)
			}
		}()
	}

	weather, err := factory(cfg, logger, appMetrics)
	if err != nil {
		return err
	}

	forecast, err := weather.Get(ctx, location)
	if err != nil {
		return err
	}

	if err = report.New(cmd.OutOrStdout(), units, format).Print(location.Raw, forecast); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	appMetrics.DaysReported.Add(float64(forecast.Daily.Len()))

	return nil
}

// Execute runs cmd with args and turns its error into a one-line diagnostic
// on the command output. It returns the process exit code.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(positionalNumbers(cmd, args))

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrUsage):
		cmd.Println(err)
		cmd.Printf("Usage: %s\n", cmd.UseLine())
	case errors.Is(err, config.ErrInvalid), errors.Is(err, manager.ErrInvalidLocation):
		cmd.Printf("Error: %s\n", err)
	case errors.Is(err, manager.ErrTimezoneNotFound):
		cmd.Printf("Failed to fetch timezone data: %s\n", err)
	default:
		cmd.Printf("Failed to fetch weather data: %s\n", err)
	}

	return exitFailure
}

// positionalNumbers moves arguments that look like negative numbers behind a
// "--" terminator so that flag parsing leaves them alone. Values of flags
// given as "--name value" stay in place.
func positionalNumbers(cmd *cobra.Command, args []string) []string {
	flags := make([]string, 0, len(args)+1)
	var numbers []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			flags = append(flags, args[i:]...)
			break
		}

		if negativeNumber.MatchString(arg) {
			numbers = append(numbers, arg)
			continue
		}

		flags = append(flags, arg)
		if takesValue(cmd, arg) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	if len(numbers) == 0 {
		return flags
	}

	for i, arg := range flags {
		if arg == "--" {
			rest := append([]string{}, flags[i+1:]...)
			return append(append(flags[:i+1], numbers...), rest...)
		}
	}

	return append(append(flags, "--"), numbers...)
}

func takesValue(cmd *cobra.Command, arg string) bool {
	name, ok := strings.CutPrefix(arg, "--")
	if !ok || name == "" || strings.Contains(name, "=") {
		return false
	}

	flag := cmd.Flags().Lookup(name)

	return flag != nil && flag.NoOptDefVal == ""
}
