package returns

import (
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"

	"github.com/PaesslerAG/jsonpath"
)

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read the environment variable \""+eodhdAPIKeyEnv+"\". You can get one at https://eodhd.com/")

func eodhdAPIKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// FetchForexDaily returns the end-of-day prices of one unit of the base
// currency quoted in the quote currency, as price directives ready to append
// to a ledger.
func FetchForexDaily(base, quote string, from, to Date) ([]*Price, error) {
	// The ticker for forex is "<base><quote>.FOREX".
	ticker := fmt.Sprintf("%s%s.FOREX", base, quote)
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		ticker, eodhdAPIKey(), from, to)

	// [{"date":"2024-02-13","open":1.0771,"high":...,"close":1.0711,"adjusted_close":1.0711,"volume":0}, ...]
	type info struct {
		Date  Date    `json:"date"`
		Close float64 `json:"adjusted_close"`
		Open  float64 `json:"open"`
	}
	content := make([]info, 0)
	if err := jwget(daily(), addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd cannot fetch %s: %w", ticker, err)
	}

	// eodhd forex close values are often buggy and equal to the open.
	// The open of the next day is closer to the truth, so be it.
	prices := make([]*Price, 0, len(content))
	for _, c := range content {
		prices = append(prices, &Price{
			Date:     c.Date.Add(-1),
			Currency: base,
			Value:    M(c.Open, quote),
		})
	}
	return prices, nil
}

// FetchForexLatest returns the latest intraday quote for one unit of the
// base currency in the quote currency, from the ls-tc.de chart endpoint.
func FetchForexLatest(instrumentID string, base, quote string) (*Price, error) {
	addr := fmt.Sprintf("https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=%s&series=intraday&type=mini", instrumentID)
	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %s/%s: %w", base, quote, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s/%s: %q %w", base, quote, path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || math.IsNaN(val) {
		return nil, fmt.Errorf("error parsing %s/%s: %q not a float: %v", base, quote, path, jval)
	}
	return &Price{Date: Today(), Currency: base, Value: M(val, quote)}, nil
}
