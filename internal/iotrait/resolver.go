// Package iotrait implements the TraitResolver interface against the
// Flora e Funga do Brasil taxon profile service. Lookups are memoized
// per session: in memory first, spilled to an ephemeral Badger store
// for large area-wide pulls. The store is removed on Close.
package iotrait

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/gnames/gnparser"
)

const (
	// Uncategorized marks taxa the source knows but carries no
	// life-form profile for, and taxa the source does not know.
	Uncategorized = "uncategorized"

	// LookupError marks names whose external lookup failed. It is a
	// distinct value, never conflated with Uncategorized, and it is
	// cached so the failing call is not repeated within the session.
	LookupError = "lookup error"
)

// resolver implements the TraitResolver interface.
type resolver struct {
	cfg    *config.Config
	http   *http.Client
	parser gnparser.GNparser
	memo   map[string]string
	store  *traitStore
	delay  time.Duration
}

// Option configures the resolver.
type Option func(*resolver)

// OptHTTPClient replaces the HTTP client.
func OptHTTPClient(h *http.Client) Option {
	return func(r *resolver) {
		r.http = h
	}
}

// OptDelay sets the politeness pause between external lookups.
func OptDelay(d time.Duration) Option {
	return func(r *resolver) {
		r.delay = d
	}
}

// New creates a TraitResolver with a session-scoped cache at cacheDir.
// The directory is cleaned on construction and removed on Close, so
// nothing persists between runs.
func New(
	cfg *config.Config,
	cacheDir string,
	opts ...Option,
) (gnoccur.TraitResolver, error) {
	store, err := newTraitStore(cacheDir)
	if err != nil {
		return nil, err
	}

	gnpCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	res := &resolver{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.Trait.TimeoutSec) * time.Second,
		},
		parser: gnparser.New(gnpCfg),
		memo:   make(map[string]string),
		store:  store,
		delay:  50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// LifeForms maps every queried name to its life form. Each unique
// name triggers at most one external call per session; failures are
// cached as LookupError and not retried.
func (r *resolver) LifeForms(
	ctx context.Context,
	names []string,
) map[string]string {
	res := make(map[string]string, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := res[name]; ok {
			continue
		}
		res[name] = r.lifeForm(ctx, name)
	}
	return res
}

// Close removes the session cache.
func (r *resolver) Close() error {
	return r.store.cleanup()
}

func (r *resolver) lifeForm(ctx context.Context, name string) string {
	if v, ok := r.memo[name]; ok {
		return v
	}
	if v, ok, err := r.store.get(name); err == nil && ok {
		r.memo[name] = v
		return v
	}

	v := r.fetch(ctx, name)
	r.memo[name] = v
	if err := r.store.put(name, v); err != nil {
		slog.Warn("Cannot cache trait value",
			"name", name, "error", err)
	}

	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return v
}

// taxonProfile mirrors the relevant part of the Flora e Funga do
// Brasil response: a list of taxa, each with a scientific name and an
// optional species profile with life forms.
type taxonProfile struct {
	Taxon *struct {
		ScientificName string `json:"scientificname"`
	} `json:"taxon"`
	SpecieProfile *struct {
		LifeForm []string `json:"lifeForm"`
	} `json:"specie_profile"`
}

// fetch asks the source for the genus of the name and matches the
// answer by genus+species prefix: only the first two tokens of the
// queried name count, infraspecific epithets and authorship are
// ignored.
func (r *resolver) fetch(ctx context.Context, name string) string {
	genus, binomial, ok := r.genusSpecies(name)
	if !ok {
		return Uncategorized
	}

	u := fmt.Sprintf("%s/taxon/%s", r.cfg.Trait.APIURL, url.PathEscape(genus))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return LookupError
	}
	resp, err := r.http.Do(req)
	if err != nil {
		slog.Warn("Trait lookup failed",
			"genus", genus, "error", err)
		return LookupError
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Uncategorized
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		slog.Warn("Trait lookup failed",
			"genus", genus, "status", resp.StatusCode)
		return LookupError
	}

	var profiles []taxonProfile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		slog.Warn("Cannot decode trait response",
			"genus", genus, "error", err)
		return LookupError
	}

	for _, p := range profiles {
		if p.Taxon == nil || !strings.HasPrefix(p.Taxon.ScientificName, binomial) {
			continue
		}
		if p.SpecieProfile != nil && len(p.SpecieProfile.LifeForm) > 0 {
			return strings.Join(p.SpecieProfile.LifeForm, ", ")
		}
		// Known taxon without a profile.
		return Uncategorized
	}
	return Uncategorized
}

// genusSpecies canonicalizes the name and returns its genus and the
// two-token "Genus species" prefix used for matching. ok is false for
// uninomials and unparsable strings with fewer than two tokens.
func (r *resolver) genusSpecies(name string) (string, string, bool) {
	candidate := name
	if parsed := r.parser.ParseName(name); parsed.Parsed {
		candidate = parsed.Canonical.Simple
	}

	parts := strings.Fields(candidate)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[0] + " " + parts[1], true
}
