package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/tabel/pkg/config"
	"github.com/vanderheijden86/tabel/pkg/export"
	"github.com/vanderheijden86/tabel/pkg/fetch"
	"github.com/vanderheijden86/tabel/pkg/model"
	"github.com/vanderheijden86/tabel/pkg/stats"
	"github.com/vanderheijden86/tabel/pkg/ui"
)

const version = "0.1.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	datasetPath := flag.String("dataset", "", "Dataset to open (.json file or SQLite database)")
	tableName := flag.String("table", "", "Table name for SQLite datasets")
	pageLength := flag.Int("page-length", 10, "Rows per page")
	recipeName := flag.String("recipe", "", "Apply named recipe from .tabel/recipes.yaml")
	recipeShort := flag.String("r", "", "Shorthand for --recipe")
	exportMD := flag.String("export-md", "", "Export the table to a Markdown file and exit")
	exportSVG := flag.String("export-svg", "", "Export a bar chart to an SVG file and exit")
	chartLabel := flag.String("chart-label", "", "Label column for --export-svg (default: first column)")
	chartValue := flag.String("chart-value", "", "Numeric column for --export-svg (default: first numeric column)")
	summarize := flag.String("summarize", "", "Print a numeric summary of the named column and exit")
	watch := flag.Bool("watch", false, "Reload when the dataset file changes")
	stateDir := flag.String("state-dir", ".tabel", "Directory for config, recipes and session state")
	flag.Parse()

	if *recipeShort != "" && *recipeName == "" {
		*recipeName = *recipeShort
	}

	if *help {
		fmt.Println("Usage: tabel [options]")
		fmt.Println("\nA TUI viewer for tabular datasets.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("tabel %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(filepath.Join(*stateDir, "config.yaml"))
	if err != nil {
		fatal(err)
	}

	dataset, err := resolveDataset(cfg, *datasetPath, *tableName)
	if err != nil {
		fatal(err)
	}

	provider, cleanup, err := openProvider(dataset)
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	m := model.NewFromLabels(provider.Columns()...)
	pager := fetch.NewPager(m, provider, *pageLength)
	if err := pager.Load(context.Background(), 1); err != nil {
		fatal(err)
	}

	if *recipeName != "" {
		recipes, err := config.LoadRecipes(filepath.Join(*stateDir, "recipes.yaml"))
		if err != nil {
			fatal(err)
		}
		recipe, ok := config.FindRecipe(recipes, *recipeName)
		if !ok {
			fatal(fmt.Errorf("unknown recipe %q", *recipeName))
		}
		if recipe.PageLength > 0 {
			m.PageLength = recipe.PageLength
		}
		if err := recipe.Apply(m); err != nil {
			fatal(err)
		}
	}

	switch {
	case *summarize != "":
		if err := printSummary(m, provider, *summarize); err != nil {
			fatal(err)
		}
		return
	case *exportMD != "":
		if err := exportMarkdown(m, provider, dataset, *exportMD); err != nil {
			fatal(err)
		}
		return
	case *exportSVG != "":
		if err := exportChart(m, provider, *exportSVG, *chartLabel, *chartValue); err != nil {
			fatal(err)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Piped output gets the markdown report instead of a TUI.
		loadAll(m, provider)
		fmt.Print(export.GenerateMarkdown(m, dataset.DisplayName()))
		return
	}

	runTUI(m, pager, dataset, *stateDir, *watch)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "tabel: %v\n", err)
	os.Exit(1)
}

// resolveDataset picks the dataset to open: the flag when given, otherwise
// an interactive choice over registered and discovered datasets.
func resolveDataset(cfg config.Config, path, table string) (config.Dataset, error) {
	if path != "" {
		return config.Dataset{Path: path, Table: table}, nil
	}

	datasets := config.DiscoverDatasets(cfg)
	if len(datasets) == 0 {
		return config.Dataset{}, fmt.Errorf("no datasets found; pass --dataset or register one in .tabel/config.yaml")
	}
	if len(datasets) == 1 {
		return datasets[0], nil
	}

	options := make([]huh.Option[int], len(datasets))
	for i, d := range datasets {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", d.DisplayName(), d.Path), i)
	}

	var choice int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Choose a dataset").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return config.Dataset{}, err
	}
	d := datasets[choice]
	if table != "" {
		d.Table = table
	}
	return d, nil
}

func openProvider(d config.Dataset) (fetch.NamedProvider, func(), error) {
	if d.IsSQLite() {
		p, err := fetch.OpenSQLite(d.Path, d.Table)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil
	}
	p, err := fetch.OpenFile(d.Path)
	if err != nil {
		return nil, nil, err
	}
	return p, func() {}, nil
}

// loadAll replaces the current page with the whole dataset for exports.
func loadAll(m *model.TableModel, p fetch.Provider) {
	rows, err := fetch.FetchAll(context.Background(), p, 500)
	if err != nil {
		log.Printf("warning: full fetch failed, exporting current page: %v", err)
		return
	}
	m.SetData(rows)
	m.TotalDataLength = len(rows)
}

func printSummary(m *model.TableModel, p fetch.Provider, column string) error {
	loadAll(m, p)
	col, err := columnIndex(m, column)
	if err != nil {
		return err
	}
	s, err := stats.Summarize(m, col)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func exportMarkdown(m *model.TableModel, p fetch.Provider, d config.Dataset, path string) error {
	loadAll(m, p)
	return os.WriteFile(path, []byte(export.GenerateMarkdown(m, d.DisplayName())), 0o644)
}

func exportChart(m *model.TableModel, p fetch.Provider, path, labelCol, valueCol string) error {
	loadAll(m, p)

	label := 0
	if labelCol != "" {
		var err error
		if label, err = columnIndex(m, labelCol); err != nil {
			return err
		}
	}

	value := -1
	if valueCol != "" {
		var err error
		if value, err = columnIndex(m, valueCol); err != nil {
			return err
		}
	} else {
		value = firstNumericColumn(m)
		if value < 0 {
			return fmt.Errorf("no numeric column found; pass --chart-value")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.GenerateSVGChart(f, m, label, value)
}

func columnIndex(m *model.TableModel, label string) (int, error) {
	for i, h := range m.Header() {
		if strings.EqualFold(h.Label, label) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", label)
}

func firstNumericColumn(m *model.TableModel) int {
	for c := 0; c < m.ColumnCount(); c++ {
		for i := 0; i < m.RowCount(); i++ {
			if _, ok := stats.NumericValue(m.CellAt(i, c)); ok {
				return c
			}
		}
	}
	return -1
}

func runTUI(m *model.TableModel, pager *fetch.Pager, d config.Dataset, stateDir string, watch bool) {
	view := ui.NewTableView(m, pager, ui.DefaultTheme(), stateDir)
	app := newApp(view, d.DisplayName())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if watch {
		fp, ok := pager.Provider.(*fetch.FileProvider)
		if !ok {
			log.Printf("warning: --watch only applies to file datasets")
		} else {
			w, err := fetch.WatchFile(d.Path, func() {
				if err := fp.Reload(); err != nil {
					log.Printf("warning: reload failed: %v", err)
					return
				}
				p.Send(ui.ReloadMsg{})
			})
			if err != nil {
				log.Printf("warning: could not watch %s: %v", d.Path, err)
			} else {
				defer w.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}
