package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/heliosim/ppf-tool/internal/catalog"
	"github.com/heliosim/ppf-tool/internal/decoder"
	"github.com/heliosim/ppf-tool/internal/rules"
)

var (
	rulesFile string
	verbose   bool

	// plot flags
	plotZone   int
	plotTime   float64
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ppf-tool",
		Short: "inspect hyades ppf dump files",
	}

	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "extra size-rule table (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "summarize a ppf file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	arraysCmd := &cobra.Command{
		Use:   "arrays [file]",
		Short: "list dumped arrays with their size rules",
		Args:  cobra.ExactArgs(1),
		RunE:  runArrays,
	}

	timesCmd := &cobra.Command{
		Use:   "times [file]",
		Short: "list dump times",
		Args:  cobra.ExactArgs(1),
		RunE:  runTimes,
	}

	collectCmd := &cobra.Command{
		Use:   "collect [file] [array]",
		Short: "write one array across all dumps as csv",
		Args:  cobra.ExactArgs(2),
		RunE:  runCollect,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [file] [array]",
		Short: "plot a zone history or a spatial profile",
		Args:  cobra.ExactArgs(2),
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotZone, "zone", -1, "plot this spatial index against time")
	plotCmd.Flags().Float64Var(&plotTime, "time", 0, "plot the profile of the dump nearest this time")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height in rows")

	rootCmd.AddCommand(infoCmd, arraysCmd, timesCmd, collectCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCatalog decodes path with the built-in size rules, extended by
// the --rules file when given.
func loadCatalog(path string) (*catalog.Catalog, error) {
	reg := rules.Builtin()
	if rulesFile != "" {
		if err := reg.LoadFile(rulesFile); err != nil {
			return nil, fmt.Errorf("load size rules: %w", err)
		}
	}

	cat, err := decoder.New(reg).DecodeFile(path)
	if err != nil {
		return nil, err
	}

	if verbose {
		for _, warning := range cat.Validate() {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
	}
	return cat, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	stats := cat.Stats()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "title\t%s\n", stats.Title)
	fmt.Fprintf(w, "zones\t%d\n", stats.ZoneCount)
	fmt.Fprintf(w, "regions\t%d\n", stats.RegionCount)
	fmt.Fprintf(w, "dumps\t%d\n", stats.DumpCount)
	fmt.Fprintf(w, "arrays\t%d\n", stats.ArrayCount)
	if stats.DumpCount > 0 {
		fmt.Fprintf(w, "time range\t%.6e .. %.6e s\n", stats.TimeRange.Start, stats.TimeRange.End)
	}
	for class, count := range stats.ArraysByClass {
		fmt.Fprintf(w, "  %s\t%d\n", class, count)
	}
	return w.Flush()
}

func runArrays(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tEXTENT")
	for _, name := range cat.ListArrays() {
		info, err := cat.Info(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", info.Name, info.Class, info.Extent)
	}
	return w.Flush()
}

func runTimes(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DUMP\tCYCLE\tTIME [s]")
	for i, t := range cat.Times() {
		dump, err := cat.Dump(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%.6e\n", i, dump.Cycle, t)
	}
	return w.Flush()
}

func runCollect(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	table, err := cat.Collect(args[1])
	if err != nil {
		return err
	}

	out := csv.NewWriter(os.Stdout)
	times := cat.Times()
	header := make([]string, len(times))
	for i, t := range times {
		header[i] = strconv.FormatFloat(t, 'e', -1, 64)
	}
	if err := out.Write(header); err != nil {
		return err
	}
	record := make([]string, 0, len(times))
	for _, row := range table {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'e', -1, 64))
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	var series []float64
	var caption string
	if plotZone >= 0 {
		table, err := cat.Collect(name)
		if err != nil {
			return err
		}
		if plotZone >= len(table) {
			return fmt.Errorf("spatial index %d out of range for %s (extent %d)", plotZone, name, len(table))
		}
		series = table[plotZone]
		caption = fmt.Sprintf("%s at spatial index %d over %d dumps", name, plotZone, cat.DumpCount())
	} else {
		idx, err := cat.TimeIndex(plotTime)
		if err != nil {
			return err
		}
		series, err = cat.At(name, idx)
		if err != nil {
			return err
		}
		caption = fmt.Sprintf("%s profile at dump %d (t=%.4e s)", name, idx, cat.Times()[idx])
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Caption(caption)))
	return nil
}
