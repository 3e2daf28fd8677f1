// Command hyperpack is a development runner for the solver: it loads a
// problem from a JSON file or an item listing, runs a hyper-search, logs the
// solution and optionally exports figures, labels and a CPU profile.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AlkiviadisAleiferis/hyperpack"
	"github.com/AlkiviadisAleiferis/hyperpack/internal/importer"
	"github.com/AlkiviadisAleiferis/hyperpack/model"
)

func main() {
	var (
		problemPath = flag.String("problem", "", "problem JSON file (items, containers or strip_pack_width, settings)")
		itemsPath   = flag.String("items", "", "item listing (.csv or .xlsx) instead of a problem file")
		container   = flag.String("container", "", "container as WxL, e.g. 30x30 (with -items)")
		stripWidth  = flag.Int("strip-width", 0, "strip packing width (with -items)")
		workers     = flag.Int("workers", model.DefaultWorkersNum, "hyper-search workers")
		maxTime     = flag.Int("time", model.DefaultMaxTimeInSeconds, "time budget in seconds")
		noRotation  = flag.Bool("no-rotation", false, "disable 90 degree rotation")
		orientation = flag.String("orientation", string(model.OrientWide), "pre-search orientation: wide, long or none")
		sortKey     = flag.String("sort", string(model.SortByArea), "pre-search sorting key: area, perimeter, longest_side_ratio or none")
		sortAsc     = flag.Bool("sort-asc", false, "sort ascending instead of descending")
		noThrottle  = flag.Bool("no-throttle", false, "disable the local search neighbor throttle")
		exportDir   = flag.String("export-dir", "", "directory to export figures into")
		exportFmt   = flag.String("export-format", "svg", "figure format: svg, html, pdf, dxf or xlsx")
		labelsPath  = flag.String("labels", "", "write QR placement labels to this PDF file")
		cpuProfile  = flag.String("cpuprofile", "", "write a CPU profile to this file")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		hyperpack.Logger.SetLevel(logrus.DebugLevel)
	}

	solver, err := buildSolver(*problemPath, *itemsPath, *container, *stripWidth, *workers, *maxTime, !*noRotation, *exportDir, *exportFmt)
	if err != nil {
		hyperpack.Logger.Fatal(err)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			hyperpack.Logger.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			hyperpack.Logger.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	var orient model.Orientation
	if *orientation != "none" {
		orient = model.Orientation(*orientation)
	}
	var sortBy model.SortBy
	if *sortKey != "none" {
		sortBy = model.SortBy{Key: model.SortKey(*sortKey), Reverse: !*sortAsc}
	}

	if err := solver.HyperSearch(orient, sortBy, !*noThrottle); err != nil {
		hyperpack.Logger.Fatal(err)
	}

	solver.LogSolution()
	hyperpack.Logger.Infof("best strategy: %v", solver.BestStrategy())

	if *exportDir != "" {
		if err := solver.CreateFigure(); err != nil {
			hyperpack.Logger.Fatal(err)
		}
	}
	if *labelsPath != "" {
		if err := solver.ExportLabels(*labelsPath); err != nil {
			hyperpack.Logger.Fatal(err)
		}
	}
}

// buildSolver assembles the solver from either a problem file or an item
// listing plus a container spec.
func buildSolver(problemPath, itemsPath, container string, stripWidth, workers, maxTime int, rotation bool, exportDir, exportFmt string) (*hyperpack.Solver, error) {
	settings := model.DefaultSettings()
	settings.WorkersNum = workers
	settings.MaxTimeInSeconds = maxTime
	settings.Rotation = rotation
	if exportDir != "" {
		settings.Figure = &model.FigureSettings{
			Export: &model.FigureExport{Path: exportDir, Format: exportFmt},
		}
	}

	switch {
	case problemPath != "":
		problem, err := importer.LoadProblem(problemPath)
		if err != nil {
			return nil, err
		}
		if problem.Settings != nil {
			settings = *problem.Settings
		}
		items, err := model.ItemsFromMap(problem.Items)
		if err != nil {
			return nil, err
		}
		if problem.StripPackWidth > 0 {
			return hyperpack.NewStripPack(problem.StripPackWidth, items, &settings)
		}
		containers, err := model.ContainersFromMap(problem.Containers)
		if err != nil {
			return nil, err
		}
		return hyperpack.New(containers, items, &settings)

	case itemsPath != "":
		var result importer.ImportResult
		if strings.HasSuffix(itemsPath, ".xlsx") || strings.HasSuffix(itemsPath, ".xls") {
			result = importer.ImportExcel(itemsPath)
		} else {
			result = importer.ImportCSV(itemsPath)
		}
		for _, w := range result.Warnings {
			hyperpack.Logger.Warn(w)
		}
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("item import failed: %s", strings.Join(result.Errors, "; "))
		}

		if stripWidth > 0 {
			return hyperpack.NewStripPack(stripWidth, result.Items, &settings)
		}
		var w, l int
		if _, err := fmt.Sscanf(container, "%dx%d", &w, &l); err != nil {
			return nil, fmt.Errorf("container must be given as WxL: %v", err)
		}
		cont := model.Container{ID: "container-0", W: w, L: l}
		return hyperpack.New([]model.Container{cont}, result.Items, &settings)

	default:
		return nil, fmt.Errorf("either -problem or -items is required")
	}
}
