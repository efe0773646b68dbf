package cmd

import (
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/internal/ioanalyze"
	"github.com/gnames/gnoccur/internal/ioarea"
	"github.com/gnames/gnoccur/internal/ioexport"
	"github.com/gnames/gnoccur/internal/iogbif"
	"github.com/gnames/gnoccur/internal/iospecies"
	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAnalyzeCmd() *cobra.Command {
	var (
		speciesPath string
		areaPath    string
		taxonClass  string
		bufferKm    float64
		csvPath     string
		geojsonPath string
		mapPath     string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a species list by proximity to an area",
		Long: `Score every species of a CSV list by how close its GBIF
occurrence records fall to an area of interest.

This command:
  1. Reads the area of interest from a GeoJSON file
  2. Reads species names from the CSV's scientificName column
  3. Queries GBIF once per species, with retries on connection failures
  4. Scores each species 0-10 by record proximity to the area
  5. Writes the merged result table and optional GeoJSON outputs

One failed species never aborts the batch; it gets a search-failed
row and the run continues. Ctrl-C stops between species and keeps
the results collected so far.

Examples:
  # Minimal run, results to results.csv
  gnoccur analyze -s species.csv -a area.geojson --csv results.csv

  # Expand the area by 10 km before scoring, restrict to insects
  gnoccur analyze -s species.csv -a area.geojson -b 10 -c Insecta \
    --csv results.csv

  # Also write representative points and a map document
  gnoccur analyze -s species.csv -a area.geojson \
    --csv results.csv --geojson points.geojson --map map.geojson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze(
				speciesPath, areaPath, taxonClass,
				bufferKm, csvPath, geojsonPath, mapPath,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	analyzeCmd.Flags().StringVarP(
		&speciesPath, "species", "s", "",
		"CSV file with a scientificName column (required)",
	)
	analyzeCmd.Flags().StringVarP(
		&areaPath, "area", "a", "",
		"GeoJSON file with the area of interest (required)",
	)
	analyzeCmd.Flags().StringVarP(
		&taxonClass, "class", "c", "",
		"restrict searches to a taxonomic class",
	)
	analyzeCmd.Flags().Float64VarP(
		&bufferKm, "buffer-km", "b", 0,
		"expand the area by this distance before scoring",
	)
	analyzeCmd.Flags().StringVar(
		&csvPath, "csv", "",
		"write the merged result table to this CSV file",
	)
	analyzeCmd.Flags().StringVar(
		&geojsonPath, "geojson", "",
		"write representative points to this GeoJSON file",
	)
	analyzeCmd.Flags().StringVar(
		&mapPath, "map", "",
		"write a map document (area, buffer, occurrences) to this file",
	)
	analyzeCmd.MarkFlagRequired("species")
	analyzeCmd.MarkFlagRequired("area")

	return analyzeCmd
}

func runAnalyze(
	speciesPath, areaPath, taxonClass string,
	bufferKm float64,
	csvPath, geojsonPath, mapPath string,
) error {
	ctx, stop := interruptContext()
	defer stop()

	list, err := iospecies.Load(speciesPath)
	if err != nil {
		return err
	}

	area, err := ioarea.Load(areaPath)
	if err != nil {
		return err
	}
	gn.Info("Area of interest: <em>%s</em>, %.1f km²",
		areaPath, area.AreaKm2())

	// A buffer failure is not fatal: the unbuffered area still gives a
	// meaningful, if stricter, score.
	var buf *geometry.Buffer
	scoreArea := area
	if bufferKm > 0 {
		buf, err = area.Buffer(bufferKm)
		if err != nil {
			gn.Warn("<warn>Cannot buffer the area by %.1f km, scoring against the raw area</warn>",
				bufferKm)
			slog.Warn("Buffering failed", "distance_km", bufferKm,
				"error", err)
		} else {
			scoreArea = buf.Area
		}
	}

	client := iogbif.New(cfg)
	anl := ioanalyze.New(cfg, client,
		ioanalyze.OptProgress(ioanalyze.NewProgressBar()))

	queries := list.Queries(taxonClass)
	results, runErr := anl.Run(ctx, queries, scoreArea)
	// Partial results of an interrupted run are still worth writing.
	if runErr != nil && len(results) == 0 {
		return runErr
	}

	if csvPath != "" {
		if err = writeFile(csvPath, func(f *os.File) error {
			return ioexport.WriteResultsCSV(f, list, results)
		}); err != nil {
			return err
		}
		gn.Info("Results written to <em>%s</em>", csvPath)
	}

	if geojsonPath != "" {
		if err = writeFile(geojsonPath, func(f *os.File) error {
			return ioexport.WriteResultsGeoJSON(f, results)
		}); err != nil {
			return err
		}
		gn.Info("Representative points written to <em>%s</em>", geojsonPath)
	}

	if mapPath != "" {
		if err = writeFile(mapPath, func(f *os.File) error {
			return ioexport.WriteMapDoc(f, area, buf, results)
		}); err != nil {
			return err
		}
		gn.Info("Map document written to <em>%s</em>", mapPath)
	}

	// Without an output file the table goes to STDOUT.
	if csvPath == "" {
		if err = ioexport.WriteResultsCSV(os.Stdout, list, results); err != nil {
			return err
		}
	}

	return runErr
}

// writeFile creates path and hands it to fn, converting file-system
// failures to an export error.
func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ioexport.ExportError(path, err)
	}
	defer f.Close()
	return fn(f)
}
