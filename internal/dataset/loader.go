package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/slices"
)

const (
	schemeHttp  = "http"
	schemeHttps = "https"
)

// Header is the expected CSV header, in order.
var Header = []string{
	"year",
	"urban_population_billion",
	"rural_population_billion",
	"global_energy_consumption_quads",
	"global_co2_emission_gt",
}

var ErrBadHeader = errors.New("unexpected header")

// Load reads the dataset from a local file path or an http(s) URL. It is
// called once at startup; any failure is terminal for the caller, there
// is no retry.
func Load(ctx context.Context, source string) (*Dataset, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == schemeHttp || u.Scheme == schemeHttps) {
		return loadRemote(ctx, source)
	}
	r, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer r.Close()
	return Read(r)
}

func loadRemote(ctx context.Context, source string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: %s returned %s", source, res.Status)
	}
	return Read(res.Body)
}

// Read parses CSV rows into records. The header row is validated against
// Header; numeric cells that fail coercion become NaN and stay in the
// dataset for the scenes to filter.
func Read(r io.Reader) (*Dataset, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true

	head, err := rs.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(head); err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, Record{
			Year:   parseField(slices.Fst(row)),
			Urban:  parseField(row[1]),
			Rural:  parseField(row[2]),
			Energy: parseField(row[3]),
			CO2:    parseField(slices.Lst(row)),
		})
	}
	return New(records), nil
}

func checkHeader(head []string) error {
	if len(head) != len(Header) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(head), len(Header))
	}
	for i, want := range Header {
		got := strings.TrimSpace(head[i])
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, got, want)
		}
	}
	return nil
}

func parseField(str string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
