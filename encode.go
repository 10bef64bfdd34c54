package returns

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger file is JSONL: one directive per line, identified by its
// "directive" field. Two kinds exist: "transaction" and "price".
//
//	{"directive":"transaction","date":"2020-01-01","narration":"deposit","postings":[
//	    {"account":"Assets:Broker:Cash","amount":1000,"currency":"USD"}, ...]}
//	{"directive":"price","date":"2020-06-01","currency":"HOOL","price":320,"quote":"USD"}

const (
	kindTransaction = "transaction"
	kindPrice       = "price"
)

// jlot is the JSON form of a cost basis lot.
type jlot struct {
	Cost     decimal.Decimal `json:"cost"`
	Currency string          `json:"currency"`
	Date     Date            `json:"date"`
}

// jposting is the JSON form of a posting.
type jposting struct {
	Account  string          `json:"account"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Lot      *jlot           `json:"lot,omitempty"`
}

// jtransaction is the JSON form of a transaction line.
type jtransaction struct {
	Directive string     `json:"directive"`
	Date      Date       `json:"date"`
	Narration string     `json:"narration,omitempty"`
	Postings  []jposting `json:"postings"`
}

// jprice is the JSON form of a price line.
type jprice struct {
	Directive string          `json:"directive"`
	Date      Date            `json:"date"`
	Currency  string          `json:"currency"`
	Price     decimal.Decimal `json:"price"`
	Quote     string          `json:"quote"`
}

// DecodeDirectives decodes a stream of JSONL lines into a chronologically
// ordered list of directives. A malformed line is an input error, not a
// warning: the whole stream is rejected.
func DecodeDirectives(r io.Reader) ([]Directive, error) {
	var entries []Directive
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Directive string `json:"directive"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify directive in line %q: %w", string(line), err)
		}

		switch identifier.Directive {
		case kindTransaction:
			var jt jtransaction
			if err := json.Unmarshal(line, &jt); err != nil {
				return nil, fmt.Errorf("invalid transaction line %q: %w", string(line), err)
			}
			txn := &Transaction{Date: jt.Date, Narration: jt.Narration}
			for _, jp := range jt.Postings {
				pos := Position{Amount: Q(jp.Amount), Currency: jp.Currency}
				if jp.Lot != nil {
					pos.Cost = &Lot{
						Currency: jp.Lot.Currency,
						Cost:     Q(jp.Lot.Cost),
						Date:     jp.Lot.Date,
					}
				}
				txn.Postings = append(txn.Postings, Posting{Account: jp.Account, Position: pos})
			}
			entries = append(entries, txn)
		case kindPrice:
			var jp jprice
			if err := json.Unmarshal(line, &jp); err != nil {
				return nil, fmt.Errorf("invalid price line %q: %w", string(line), err)
			}
			entries = append(entries, &Price{
				Date:     jp.Date,
				Currency: jp.Currency,
				Value:    M(jp.Price, jp.Quote),
			})
		default:
			return nil, fmt.Errorf("unknown directive %q in line %q", identifier.Directive, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	stableSortByDate(entries)
	return entries, nil
}

// EncodeDirective writes one directive as a JSONL line.
func EncodeDirective(w io.Writer, entry Directive) error {
	var line any
	switch d := entry.(type) {
	case *Transaction:
		jt := jtransaction{Directive: kindTransaction, Date: d.Date, Narration: d.Narration}
		for _, p := range d.Postings {
			jp := jposting{Account: p.Account, Amount: p.Position.Amount.value, Currency: p.Position.Currency}
			if p.Position.Cost != nil {
				jp.Lot = &jlot{
					Cost:     p.Position.Cost.Cost.value,
					Currency: p.Position.Cost.Currency,
					Date:     p.Position.Cost.Date,
				}
			}
			jt.Postings = append(jt.Postings, jp)
		}
		line = jt
	case *Price:
		line = jprice{
			Directive: kindPrice,
			Date:      d.Date,
			Currency:  d.Currency,
			Price:     d.Value.Amount().value,
			Quote:     d.Value.Currency(),
		}
	default:
		return fmt.Errorf("unknown directive type %T", entry)
	}
	data, err := json.Marshal(line)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// EncodeDirectives writes the whole stream as JSONL.
func EncodeDirectives(w io.Writer, entries []Directive) error {
	for _, entry := range entries {
		if err := EncodeDirective(w, entry); err != nil {
			return err
		}
	}
	return nil
}
