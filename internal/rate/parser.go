package rate

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cbrbot/internal/domain"

	"golang.org/x/net/html/charset"
)

type valCurs struct {
	XMLName xml.Name `xml:"ValCurs"`
	Date    string   `xml:"Date,attr"`
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Value    string `xml:"Value"`
}

// ParseDocument decodes a daily feed document into a snapshot.
// Any bad entry rejects the whole document, so a partial snapshot is never produced.
func ParseDocument(doc []byte) (domain.RateSnapshot, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	// the feed is served as windows-1251
	dec.CharsetReader = charset.NewReaderLabel

	var body valCurs
	if err := dec.Decode(&body); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to decode document: %w", domain.ErrMalformedDocument, err)
	}

	date := strings.TrimSpace(body.Date)
	if date == "" {
		return domain.RateSnapshot{}, fmt.Errorf("%w: Date attribute not found", domain.ErrMalformedDocument)
	}
	if len(body.Valutes) == 0 {
		return domain.RateSnapshot{}, fmt.Errorf("%w: no rate entries", domain.ErrMalformedDocument)
	}

	rates := make(map[string]float64, len(body.Valutes))
	for i, v := range body.Valutes {
		code := strings.TrimSpace(v.CharCode)
		if code == "" {
			return domain.RateSnapshot{}, fmt.Errorf("%w: entry %d has no CharCode", domain.ErrMalformedDocument, i)
		}
		if _, dup := rates[code]; dup {
			return domain.RateSnapshot{}, fmt.Errorf("%w: duplicate entry for %s", domain.ErrMalformedDocument, code)
		}
		value, err := parseEntryValue(v)
		if err != nil {
			return domain.RateSnapshot{}, fmt.Errorf("%w: entry %s: %w", domain.ErrMalformedDocument, code, err)
		}
		rates[code] = value
	}

	return domain.RateSnapshot{Date: date, Rates: rates}, nil
}

// parseEntryValue returns RUB per one unit: Value is quoted per Nominal units.
func parseEntryValue(v valute) (float64, error) {
	raw := strings.TrimSpace(v.Value)
	if raw == "" {
		return 0, fmt.Errorf("no Value")
	}
	value, err := ParseDecimalComma(raw)
	if err != nil {
		return 0, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, fmt.Errorf("value %q is not a positive number", raw)
	}

	nominal := 1
	if n := strings.TrimSpace(v.Nominal); n != "" {
		nominal, err = strconv.Atoi(n)
		if err != nil || nominal <= 0 {
			return 0, fmt.Errorf("nominal %q is not a positive integer", n)
		}
	}
	return value / float64(nominal), nil
}

// ParseDecimalComma parses numbers written with a decimal comma, e.g. "75,1234".
func ParseDecimalComma(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}
