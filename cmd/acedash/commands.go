package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/config"
	"github.com/ukaji3/acedash-go/pkg/acedash/generator"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
	"github.com/ukaji3/acedash-go/pkg/acedash/output"
	"github.com/ukaji3/acedash-go/pkg/acedash/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			st, err := a.newStack(ctx, reg)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := server.New(a.cfg.Server, st.service, server.Options{
				Cache:    st,
				Registry: reg,
				Logger:   a.logger.Named("http"),
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

// outputFlags are shared by commands that print JSON.
type outputFlags struct {
	path   string
	pretty bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "Pretty-print JSON output")
}

func (o *outputFlags) write(cmd *cobra.Command, v any) error {
	data, err := output.ToJSON(v, o.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if o.path != "" {
		if err := os.WriteFile(o.path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func newOptionsCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the selectable months, semesters and academic years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.newStack(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer st.Close()

			opts, err := st.service.TimeOptions(cmd.Context())
			if err != nil {
				return err
			}
			return out.write(cmd, opts)
		},
	}
	out.register(cmd)
	return cmd
}

func newChartCmd(a *app) *cobra.Command {
	var (
		out        outputFlags
		timeMode   string
		selections []string
		dataType   string
	)
	cmd := &cobra.Command{
		Use:   "chart <chart0..chart11>",
		Short: "Generate one chart as JSON",
		Long: `Generate one chart over a time selection.

Selections are months (2024-01), semesters (112-1) or academic years (112)
depending on --time-mode. Without --select every available month is used.`,
		Example: `  acedash chart chart3 --time-mode semester --select 112-1,112-2
  acedash chart chart0 --data cumulative --workbook ace.xlsx --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.newStack(ctx, nil)
			if err != nil {
				return err
			}
			defer st.Close()

			window, err := chartWindow(ctx, st, models.TimeMode(timeMode), selections)
			if err != nil {
				return err
			}
			result, err := st.service.Generate(ctx, args[0], window, models.AggregationMode(dataType))
			if err != nil {
				return err
			}
			return out.write(cmd, result)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&timeMode, "time-mode", string(models.TimeModeMonth), "Selection granularity: month, semester, year")
	cmd.Flags().StringSliceVar(&selections, "select", nil, "Comma-separated time selections")
	cmd.Flags().StringVar(&dataType, "data", string(models.ModeNew), "Aggregation: new, cumulative")
	return cmd
}

func chartWindow(ctx context.Context, st *stack, mode models.TimeMode, selections []string) ([]calendar.MonthKey, error) {
	if len(selections) > 0 {
		return st.service.Window(ctx, mode, selections)
	}
	opts, err := st.service.TimeOptions(ctx)
	if err != nil {
		return nil, err
	}
	if len(opts.Months) == 0 {
		return nil, fmt.Errorf("no months available")
	}
	return opts.Months, nil
}

func newTablesCmd(a *app) *cobra.Command {
	var (
		dir    string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Dump the backing tables as one JSON file per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.newStack(ctx, nil)
			if err != nil {
				return err
			}
			defer st.Close()

			wb := &models.WorkbookData{
				BookName: a.sourceName(),
				Tables:   make(map[string]*models.Table),
			}
			names := a.cfg.TableNames()
			for _, role := range generator.Roles {
				name := names.Name(role)
				t, err := st.provider.FetchTable(ctx, name)
				if err != nil {
					return fmt.Errorf("fetch %s table %q: %w", role, name, err)
				}
				if t == nil {
					return fmt.Errorf("fetch %s table %q: no table", role, name)
				}
				wb.Tables[name] = t
				a.logger.Debug("table fetched", zap.String("table", name), zap.Int("rows", t.Len()))
			}
			if err := output.WriteTables(wb, dir, pretty); err != nil {
				return fmt.Errorf("failed to write table files: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tables to %s\n", len(wb.Tables), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func (a *app) sourceName() string {
	if a.cfg.Source.Kind == config.SourceWorkbook {
		return a.cfg.Source.WorkbookPath
	}
	return a.cfg.Source.SpreadsheetID
}
