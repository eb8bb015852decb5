package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/heliosim/ppf-tool/internal/catalog"
	"github.com/heliosim/ppf-tool/internal/decoder"
	"github.com/heliosim/ppf-tool/internal/rules"
)

var (
	filename  = flag.String("file", "", "ppf dump file to browse")
	rulesFile = flag.String("rules", "", "extra size-rule table (yaml)")
	verbose   = flag.Bool("v", false, "verbose output")
)

// BrowserApp is a two-pane dump browser: dump list on the left,
// per-dump array details on the right.
type BrowserApp struct {
	app         *tview.Application
	dumpList    *tview.List
	detailsText *tview.TextView
	catalog     *catalog.Catalog
}

func main() {
	flag.Parse()

	if *filename == "" {
		fmt.Printf("Usage: %s -file <ppf_file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cat, err := loadCatalog(*filename)
	if err != nil {
		fmt.Printf("Error loading ppf file: %v\n", err)
		os.Exit(1)
	}

	app := NewBrowserApp(cat)
	if err := app.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	reg := rules.Builtin()
	if *rulesFile != "" {
		if err := reg.LoadFile(*rulesFile); err != nil {
			return nil, fmt.Errorf("load size rules: %w", err)
		}
	}

	if *verbose {
		fmt.Printf("Loading ppf file: %s\n", path)
	}

	cat, err := decoder.New(reg).DecodeFile(path)
	if err != nil {
		return nil, err
	}

	if *verbose {
		fmt.Printf("Loaded %d dumps, %d arrays\n", cat.DumpCount(), len(cat.ListArrays()))
		for _, warning := range cat.Validate() {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
	}
	return cat, nil
}

func NewBrowserApp(cat *catalog.Catalog) *BrowserApp {
	app := &BrowserApp{catalog: cat}

	app.app = tview.NewApplication()

	app.dumpList = tview.NewList()
	app.dumpList.SetBorder(true)
	app.dumpList.SetTitle(" Dumps ")
	app.dumpList.ShowSecondaryText(false)

	app.detailsText = tview.NewTextView()
	app.detailsText.SetBorder(true)
	app.detailsText.SetTitle(" Dump Details ")
	app.detailsText.SetDynamicColors(true)
	app.detailsText.SetScrollable(true)

	for i, t := range cat.Times() {
		app.dumpList.AddItem(fmt.Sprintf("Dump %-4d t=%.4e s", i, t), "", 0, nil)
	}

	app.dumpList.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		if index < cat.DumpCount() {
			app.showDumpDetails(index)
		}
	})

	app.dumpList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			app.app.SetFocus(app.detailsText)
			return nil
		case tcell.KeyEscape:
			app.app.Stop()
			return nil
		case tcell.KeyEnter:
			app.app.SetFocus(app.detailsText)
			return nil
		}
		return event
	})

	app.detailsText.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			app.app.SetFocus(app.dumpList)
			return nil
		case tcell.KeyEscape:
			app.app.Stop()
			return nil
		}
		return event
	})

	app.showProblemInfo()

	if cat.DumpCount() > 0 {
		app.showDumpDetails(0)
		app.dumpList.SetCurrentItem(0)
	}

	return app
}

func (app *BrowserApp) showProblemInfo() {
	cat := app.catalog
	info := fmt.Sprintf(`[yellow]%s[white]

Zones: %d
Regions: %d
Dumps: %d
Arrays: %d

[blue]Navigation:[white]
↑/↓: Navigate dumps
Tab: Switch panes
Esc: Exit
`,
		cat.Title(),
		cat.ZoneCount(),
		len(cat.RegionBoundaries()),
		cat.DumpCount(),
		len(cat.ListArrays()))

	app.detailsText.SetText(info)
}

func (app *BrowserApp) showDumpDetails(index int) {
	cat := app.catalog
	dump, err := cat.Dump(index)
	if err != nil {
		return
	}

	details := fmt.Sprintf(`[yellow]Dump %d[white]

[green]Cycle:[white] %d
[green]Time:[white]  %.6e s

[green]Arrays:[white]
`, index, dump.Cycle, dump.Time)

	for _, name := range cat.ListArrays() {
		values := dump.Arrays[name]
		lo, hi := minMax(values)
		details += fmt.Sprintf("  %-10s n=%-5d min=%.4e max=%.4e\n", name, len(values), lo, hi)
	}

	app.detailsText.SetText(details)
	app.dumpList.SetCurrentItem(index)
}

func (app *BrowserApp) Run() error {
	flex := tview.NewFlex()
	flex.AddItem(app.dumpList, 0, 1, true)
	flex.AddItem(app.detailsText, 0, 2, false)

	app.app.SetRoot(flex, true)
	app.app.SetFocus(app.dumpList)

	return app.app.Run()
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
