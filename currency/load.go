package currency

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/gocy/internal/logging"
)

const (
	// BaseFile holds the ISO 4217 currencies
	BaseFile = "currency_iso.json"
	// SupplementalFile holds currencies outside of ISO 4217, its entries replace base entries with the same key
	SupplementalFile = "currency_non_iso.json"
	// IDsFile maps currency keys to numeric short ids
	IDsFile = "currency_ids.json"
)

//go:embed assets/*.json
var assets embed.FS

// Assets returns the embedded currency sources
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}

	return sub
}

type LoadOption func(*loadOptions)

type loadOptions struct {
	fsys              fs.FS
	silenceMissingIDs bool
}

// WithFS read currency sources from fsys instead of the embedded assets
func WithFS(fsys fs.FS) LoadOption {
	return func(o *loadOptions) {
		o.fsys = fsys
	}
}

// WithSilenceMissingIDs let the load succeed when some currencies have no short id.
// It is meant for the id maintenance tool only
func WithSilenceMissingIDs() LoadOption {
	return func(o *loadOptions) {
		o.silenceMissingIDs = true
	}
}

// Load reads, merges and validates the currency sources and returns an immutable registry.
// On failure the returned error is a *LoadError and the registry is nil
func Load(ctx context.Context, opts ...LoadOption) (*Registry, error) {
	logger := logging.FromContext(ctx)

	o := loadOptions{fsys: Assets()}
	for _, opt := range opts {
		opt(&o)
	}

	var errs *multierror.Error

	merged, err := mergeRecords(o.fsys)
	if err != nil {
		errs = multierror.Append(errs, err)
		return nil, newLoadError(errs, nil)
	}

	currencies, err := buildCurrencies(merged)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	ids, err := readIDs(o.fsys, IDsFile)
	if err != nil {
		errs = multierror.Append(errs, err)
		return nil, newLoadError(errs, nil)
	}

	if err := assignIDs(currencies, ids); err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs.ErrorOrNil() != nil {
		return nil, newLoadError(errs, nil)
	}

	missing := missingIDs(currencies)
	if len(missing) > 0 {
		codes := make([]string, len(missing))
		for i, c := range missing {
			codes[i] = c.ISOCode
		}

		if !o.silenceMissingIDs {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrMissingIDs, strings.Join(codes, ", ")))
			return nil, newLoadError(errs, codes)
		}

		logger.Printf("warning: %d currencies have no short id: %s", len(codes), strings.Join(codes, ", "))
	}

	return newRegistry(currencies), nil
}

// mergeRecords reads base and supplemental records, a supplemental entry replaces the whole
// base entry with the same folded key. The result is keyed by folded keys
func mergeRecords(fsys fs.FS) (map[string]record, error) {
	base, err := readRecords(fsys, BaseFile)
	if err != nil {
		return nil, fmt.Errorf("base records: %w", err)
	}

	supplemental, err := readRecords(fsys, SupplementalFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("supplemental records: %w", err)
		}
	}

	var errs *multierror.Error

	merged, err := foldRecords(BaseFile, base)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	replacements, err := foldRecords(SupplementalFile, supplemental)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs.ErrorOrNil() != nil {
		return nil, errs
	}

	for key, r := range replacements {
		merged[key] = r
	}

	return merged, nil
}

// foldRecords rekeys the records of one file by folded key. Two keys of the same file
// folding into one are a conflict
func foldRecords(name string, records map[string]record) (map[string]record, error) {
	var errs *multierror.Error

	rawKeys := make([]string, 0, len(records))
	for rawKey := range records {
		rawKeys = append(rawKeys, rawKey)
	}
	sort.Strings(rawKeys)

	folded := make(map[string]record, len(records))
	seen := make(map[string]string, len(records))
	for _, rawKey := range rawKeys {
		key := fold(rawKey)
		if prev, ok := seen[key]; ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: %q and %q fold into %q", ErrKeyConflict, name, prev, rawKey, key))
			continue
		}

		seen[key] = rawKey
		folded[key] = records[rawKey]
	}

	return folded, errs.ErrorOrNil()
}

func buildCurrencies(records map[string]record) (map[string]Currency, error) {
	var errs *multierror.Error

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	currencies := make(map[string]Currency, len(records))
	for _, key := range keys {
		c, err := records[key].currency(key)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		currencies[key] = c
	}

	return currencies, errs.ErrorOrNil()
}

// assignIDs sets ids by key. An id for a key absent from currencies is an error
func assignIDs(currencies map[string]Currency, ids map[string]int) error {
	var errs *multierror.Error

	keys := make([]string, 0, len(ids))
	for key := range ids {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	owners := make(map[int]string, len(ids))
	for _, rawKey := range keys {
		id := ids[rawKey]
		key := fold(rawKey)

		c, ok := currencies[key]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: id %d references key %q", ErrUnknownCurrency, id, rawKey))
			continue
		}

		if id < 1 {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: id %d < 1", ErrInvalidRecord, key, id))
			continue
		}

		if owner, ok := owners[id]; ok {
			errs = multierror.Append(errs, fmt.Errorf("%w: %d used by %s and %s", ErrDuplicateID, id, owner, key))
			continue
		}

		owners[id] = key
		c.ID = id
		currencies[key] = c
	}

	return errs.ErrorOrNil()
}

// missingIDs returns currencies without a short id ordered by key
func missingIDs(currencies map[string]Currency) []Currency {
	var missing []Currency
	for _, c := range currencies {
		if !c.HasID() {
			missing = append(missing, c)
		}
	}

	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Key < missing[j].Key
	})

	return missing
}
