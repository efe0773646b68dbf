package cmd

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/internal/ioarea"
	"github.com/gnames/gnoccur/internal/ioexport"
	"github.com/gnames/gnoccur/internal/iogbif"
	"github.com/gnames/gnoccur/internal/iotrait"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/geometry"
	"github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/spf13/cobra"
)

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	var (
		areaPath    string
		radiusKm    float64
		kingdom     string
		limit       int
		withTraits  bool
		csvPath     string
		geojsonPath string
	)

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "List GBIF occurrences inside an area",
		Long: `Run a bulk occurrence search over an area of interest.

This command:
  1. Reads the area of interest from a GeoJSON file
  2. With --radius-km, replaces the area by a circle of that radius
     around the area centroid
  3. Pages through GBIF occurrence records inside the geometry until
     the record cap is reached or GBIF runs out of records
  4. Optionally looks up life forms of plant species in Flora e Funga
     do Brasil
  5. Writes the record table as CSV and/or GeoJSON

Examples:
  # All plant records inside the area
  gnoccur search -a area.geojson -k plantae --csv records.csv

  # Records within 25 km of the area centroid, with life forms
  gnoccur search -a area.geojson -r 25 -k plantae -t --csv records.csv

  # First 1000 animal records as GeoJSON points
  gnoccur search -a area.geojson -k animalia -l 1000 \
    --geojson records.geojson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(
				areaPath, radiusKm, kingdom, limit,
				withTraits, csvPath, geojsonPath,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().StringVarP(
		&areaPath, "area", "a", "",
		"GeoJSON file with the area of interest (required)",
	)
	searchCmd.Flags().Float64VarP(
		&radiusKm, "radius-km", "r", 0,
		"search a circle of this radius around the area centroid",
	)
	searchCmd.Flags().StringVarP(
		&kingdom, "kingdom", "k", "",
		"restrict to a kingdom: animalia, fungi or plantae",
	)
	searchCmd.Flags().IntVarP(
		&limit, "limit", "l", 0,
		"stop after this many records (default from config)",
	)
	searchCmd.Flags().BoolVarP(
		&withTraits, "traits", "t", false,
		"look up life forms of plant species",
	)
	searchCmd.Flags().StringVar(
		&csvPath, "csv", "",
		"write the record table to this CSV file",
	)
	searchCmd.Flags().StringVar(
		&geojsonPath, "geojson", "",
		"write record points to this GeoJSON file",
	)
	searchCmd.MarkFlagRequired("area")

	return searchCmd
}

func runSearch(
	areaPath string,
	radiusKm float64,
	kingdom string,
	limit int,
	withTraits bool,
	csvPath, geojsonPath string,
) error {
	ctx, stop := interruptContext()
	defer stop()

	var kingdomKey int
	if kingdom != "" {
		var ok bool
		kingdomKey, ok = occurrence.KingdomKeys[strings.ToLower(kingdom)]
		if !ok {
			return iogbif.BadSearchQueryError("kingdom", kingdom)
		}
	}

	area, err := ioarea.Load(areaPath)
	if err != nil {
		return err
	}

	searchArea := area
	if radiusKm > 0 {
		searchArea, err = geometry.Circle(
			area.Centroid(), radiusKm, cfg.Analysis.CircleSegments,
		)
		if err != nil {
			return err
		}
		gn.Info("Searching %.1f km around the area centroid", radiusKm)
	}

	client := iogbif.New(cfg)
	q := occurrence.AreaQuery{
		GeometryWKT: searchArea.WKT(),
		KingdomKey:  kingdomKey,
		Cap:         limit,
	}

	records, searchErr := collectRecords(ctx, client, q)
	if searchErr != nil {
		if len(records) == 0 {
			return searchErr
		}
		// A mid-stream failure ends the search but the pages already
		// fetched still carry the summary and the exports.
		gn.Warn("<warn>Search ended early, keeping %s records fetched so far</warn>",
			humanize.Comma(int64(len(records))))
		slog.Warn("Occurrence search interrupted", "error", searchErr)
	}

	var traits map[string]string
	if withTraits {
		traits, err = lookupTraits(ctx, records)
		if err != nil {
			return err
		}
	}

	printSearchSummary(records, traits)

	if csvPath != "" {
		if err = writeFile(csvPath, func(f *os.File) error {
			return ioexport.WriteRecordsCSV(f, records, traits)
		}); err != nil {
			return err
		}
		gn.Info("Records written to <em>%s</em>", csvPath)
	}

	if geojsonPath != "" {
		if err = writeFile(geojsonPath, func(f *os.File) error {
			return ioexport.WriteRecordsGeoJSON(f, records, traits)
		}); err != nil {
			return err
		}
		gn.Info("Record points written to <em>%s</em>", geojsonPath)
	}

	return nil
}

// collectRecords drains the occurrence stream into a slice. On a
// mid-stream failure it returns the records fetched so far together
// with the error.
func collectRecords(
	ctx context.Context,
	client gnoccur.OccurrenceClient,
	q occurrence.AreaQuery,
) ([]occurrence.Record, error) {
	var records []occurrence.Record
	for rec, err := range client.SearchArea(ctx, q) {
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// lookupTraits resolves life forms for the unique species names of the
// record set.
func lookupTraits(
	ctx context.Context,
	records []occurrence.Record,
) (map[string]string, error) {
	resolver, err := iotrait.New(cfg, config.TraitCacheDir(cfg.HomeDir))
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	names := uniqueNames(records)
	gn.Info("Looking up life forms for <em>%s</em> species",
		humanize.Comma(int64(len(names))))
	return resolver.LifeForms(ctx, names), nil
}

func uniqueNames(records []occurrence.Record) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, rec := range records {
		if rec.ScientificName == "" {
			continue
		}
		if _, ok := seen[rec.ScientificName]; ok {
			continue
		}
		seen[rec.ScientificName] = struct{}{}
		res = append(res, rec.ScientificName)
	}
	return res
}

func printSearchSummary(
	records []occurrence.Record,
	traits map[string]string,
) {
	species := uniqueNames(records)
	gn.Info("Found <em>%s</em> records of <em>%s</em> species",
		humanize.Comma(int64(len(records))),
		humanize.Comma(int64(len(species))),
	)

	if traits == nil {
		return
	}

	tally := make(map[string]int)
	for _, name := range species {
		lf := traits[name]
		if lf == "" {
			lf = iotrait.Uncategorized
		}
		tally[lf]++
	}
	forms := make([]string, 0, len(tally))
	for lf := range tally {
		forms = append(forms, lf)
	}
	sort.Strings(forms)
	for _, lf := range forms {
		gn.Info("  %s: <em>%d</em> species", lf, tally[lf])
	}
}
