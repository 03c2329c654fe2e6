package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/satoh-er/eui_calc_go/casefile"
	"github.com/satoh-er/eui_calc_go/energycalc"
	"github.com/satoh-er/eui_calc_go/internal/api"
	"github.com/satoh-er/eui_calc_go/internal/config"
	"github.com/satoh-er/eui_calc_go/internal/logging"
	"github.com/satoh-er/eui_calc_go/internal/metrics"
	"github.com/satoh-er/eui_calc_go/refdata"
)

// app is what every subcommand shares once the configuration is read.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	tables  *refdata.Tables
	metrics *metrics.Metrics
	engine  *energycalc.Engine
}

func (a *app) setup(stderr io.Writer, configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	a.cfg = cfg

	if a.log, err = logging.New(stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if a.tables, err = refdata.Default(); err != nil {
		return fmt.Errorf("reference tables: %w", err)
	}
	if cfg.Weather.Dir != "" {
		a.log.Info("load weather data", "dir", cfg.Weather.Dir)
		w, err := refdata.LoadWeatherDir(cfg.Weather.Dir)
		if err != nil {
			return err
		}
		a.tables = a.tables.WithWeather(w)
	}

	a.metrics = metrics.New()
	a.engine = energycalc.NewEngine(a.tables, energycalc.EngineOptions{
		Logger:        a.log,
		Observer:      a.metrics,
		CacheTTL:      cfg.Cache.TTL,
		CacheCapacity: cfg.Cache.Capacity,
	})
	return nil
}

func (a *app) loadCase(path string) (energycalc.Params, error) {
	f, err := casefile.Load(path)
	if err != nil {
		return energycalc.Params{}, err
	}
	p, err := f.Params(a.tables)
	if err != nil {
		return energycalc.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func newRootCmd() *cobra.Command {
	var configPath, logLevel string
	a := &app{}

	root := &cobra.Command{
		Use:          "eui_calc",
		Short:        "Building energy use intensity calculation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr(), configPath, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (.yaml, .yml or .json)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the configuration (debug, info, warn, error)")

	root.AddCommand(runCmd(a))
	root.AddCommand(compareCmd(a))
	root.AddCommand(serveCmd(a))
	root.AddCommand(citiesCmd(a))
	root.AddCommand(materialsCmd(a))
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

//---------------------------------------------------------------------------------------------------//

/*
runCmd evaluates one case.

	eui_calc run case.yaml              result JSON on stdout
	eui_calc run case.yaml -o out       out/result.json and out/monthly_result.csv
	eui_calc run case.yaml -o out -w    also out/weather_<city>.csv
*/
func runCmd(a *app) *cobra.Command {
	var outputDir string
	var weatherSaved bool

	cmd := &cobra.Command{
		Use:   "run [case-file]",
		Short: "Evaluate one building case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			a.log.Info("evaluation started", "case_file", args[0])

			p, err := a.loadCase(args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.Evaluate(p)
			if err != nil {
				return err
			}

			if outputDir == "" {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				if err := saveResult(outputDir, "result", res); err != nil {
					return err
				}
				if weatherSaved {
					cc, err := a.tables.City(res.City)
					if err != nil {
						return err
					}
					path, err := saveWeather(outputDir, cc)
					if err != nil {
						return err
					}
					a.log.Info("weather data saved", "path", path)
				}
			}

			a.log.Info("evaluation finished", "id", res.ID, "eui", res.Energy.EUI,
				"rating", res.Report.Rating.String(), "elapsed_time", time.Since(start))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory; the result is printed when empty")
	cmd.Flags().BoolVarP(&weatherSaved, "weather-saved", "w", false, "save the hourly weather series of the city (with --output)")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "compare [base-case] [proposed-case]",
		Short: "Evaluate a base and a proposed case and report the savings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			base, err := a.loadCase(args[0])
			if err != nil {
				return err
			}
			proposed, err := a.loadCase(args[1])
			if err != nil {
				return err
			}
			c, err := a.engine.Compare(cmd.Context(), base, proposed)
			if err != nil {
				return err
			}

			if outputDir == "" {
				if err := writeJSON(cmd.OutOrStdout(), c); err != nil {
					return err
				}
			} else {
				if err := saveComparison(outputDir, c); err != nil {
					return err
				}
			}

			a.log.Info("comparison finished",
				"base_eui", c.Base.Energy.EUI,
				"proposed_eui", c.Proposed.Energy.EUI,
				"eui_savings_percent", c.EUISavingsPercent,
				"elapsed_time", time.Since(start))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory; the comparison is printed when empty")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(a.engine, a.tables, a.metrics, a.log).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.log.Info("http api listening", "addr", addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info("http api shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	return cmd
}

func citiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities with climate data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CITY\tLATITUDE\tMEAN WIND (m/s)")
			for _, c := range a.tables.Cities() {
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", c.Name, c.LatitudeDeg, stat.Mean(c.Wind[:], nil))
			}
			return tw.Flush()
		},
	}
}

func materialsCmd(a *app) *cobra.Command {
	var assembly string

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the construction catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := a.tables.Catalogue()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "# reference tables %s\n", cat.Version)
			fmt.Fprintln(tw, "ASSEMBLY\tLAYER\tMATERIAL\tK (W/mK)\tSH (J/kgK)\tD (kg/m3)")
			for _, m := range cat.Materials {
				if assembly != "" && !strings.EqualFold(assembly, m.Assembly) {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\n", m.Assembly, m.Layer, m.Name, m.K, m.SH, m.D)
			}
			if assembly == "" {
				for _, s := range cat.Slabs {
					fmt.Fprintf(tw, "slab\t\t%s\tU=%g\t\t\n", s.Name, s.UValue)
				}
				for _, w := range cat.Windows {
					fmt.Fprintf(tw, "window\t\t%s\tU=%g\tSHGC=%g\t\n", w.Name, w.UValue, w.SHGC)
				}
				for _, f := range cat.Frames {
					fmt.Fprintf(tw, "frame\t\t%s\tFF=%g\t\t\n", f.Name, f.FrameFactor)
				}
				for _, s := range cat.Shading {
					fmt.Fprintf(tw, "shading\t\t%s\twinter=%g\tsummer=%g\t\n", s.Name, s.Winter, s.Summer)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&assembly, "assembly", "", "show only roof, wall or door materials")
	return cmd
}
