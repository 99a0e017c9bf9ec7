package rate

import (
	"math"
	"testing"

	"cbrbot/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const dailyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<ValCurs Date="19.10.2024" name="Foreign Currency Market">
	<Valute ID="R01235"><NumCode>840</NumCode><CharCode>USD</CharCode><Nominal>1</Nominal><Name>Доллар США</Name><Value>97,0226</Value><VunitRate>97,0226</VunitRate></Valute>
	<Valute ID="R01239"><NumCode>978</NumCode><CharCode>EUR</CharCode><Nominal>1</Nominal><Name>Евро</Name><Value>105,4898</Value><VunitRate>105,4898</VunitRate></Valute>
	<Valute ID="R01820"><NumCode>392</NumCode><CharCode>JPY</CharCode><Nominal>100</Nominal><Name>Японских иен</Name><Value>64,8500</Value><VunitRate>0,6485</VunitRate></Valute>
</ValCurs>`

func TestParseDocument_Success(t *testing.T) {
	snap, err := ParseDocument([]byte(dailyFeed))
	require.NoError(t, err)

	require.Equal(t, "19.10.2024", snap.Date)
	require.Len(t, snap.Rates, 3)
	require.InDelta(t, 97.0226, snap.Rates["USD"], 1e-9)
	require.InDelta(t, 105.4898, snap.Rates["EUR"], 1e-9)
	// quoted per 100 units
	require.InDelta(t, 0.6485, snap.Rates["JPY"], 1e-9)
	require.Equal(t, []string{"EUR", "JPY", "USD"}, snap.Codes())

	for code, v := range snap.Rates {
		require.False(t, math.IsInf(v, 0) || math.IsNaN(v), code)
		require.Greater(t, v, 0.0, code)
	}
}

func TestParseDocument_Windows1251(t *testing.T) {
	utf8Body := `<?xml version="1.0" encoding="windows-1251"?>` +
		`<ValCurs Date="01.01.2024" name="Foreign Currency Market">` +
		`<Valute ID="R01235"><CharCode>USD</CharCode><Nominal>1</Nominal><Name>Доллар США</Name><Value>89,6883</Value></Valute>` +
		`</ValCurs>`
	encoded, err := charmap.Windows1251.NewEncoder().String(utf8Body)
	require.NoError(t, err)

	snap, err := ParseDocument([]byte(encoded))
	require.NoError(t, err)
	require.Equal(t, "01.01.2024", snap.Date)
	require.InDelta(t, 89.6883, snap.Rates["USD"], 1e-9)
}

func TestParseDocument_NominalDefaultsToOne(t *testing.T) {
	doc := `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>75,1234</Value></Valute></ValCurs>`

	snap, err := ParseDocument([]byte(doc))
	require.NoError(t, err)
	require.InDelta(t, 75.1234, snap.Rates["USD"], 1e-12)
}

func TestParseDocument_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "missing date",
			doc:     `<ValCurs name="x"><Valute><CharCode>USD</CharCode><Value>90,1</Value></Valute></ValCurs>`,
			wantMsg: "Date attribute not found",
		},
		{
			name:    "empty date",
			doc:     `<ValCurs Date=" "><Valute><CharCode>USD</CharCode><Value>90,1</Value></Valute></ValCurs>`,
			wantMsg: "Date attribute not found",
		},
		{
			name:    "missing code",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>90,1</Value></Valute><Valute><Value>1,5</Value></Valute></ValCurs>`,
			wantMsg: "entry 1 has no CharCode",
		},
		{
			name:    "missing value",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode></Valute></ValCurs>`,
			wantMsg: "entry USD: no Value",
		},
		{
			name:    "non numeric value",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>n/a</Value></Valute></ValCurs>`,
			wantMsg: "entry USD",
		},
		{
			name:    "zero value",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>0,0000</Value></Valute></ValCurs>`,
			wantMsg: "is not a positive number",
		},
		{
			name:    "bad nominal",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Nominal>0</Nominal><Value>1,0</Value></Valute></ValCurs>`,
			wantMsg: "nominal \"0\" is not a positive integer",
		},
		{
			name:    "duplicate code",
			doc:     `<ValCurs Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>1,0</Value></Valute><Valute><CharCode>USD</CharCode><Value>2,0</Value></Valute></ValCurs>`,
			wantMsg: "duplicate entry for USD",
		},
		{
			name:    "no entries",
			doc:     `<ValCurs Date="01.01.2024"></ValCurs>`,
			wantMsg: "no rate entries",
		},
		{
			name:    "wrong root",
			doc:     `<Rates Date="01.01.2024"><Valute><CharCode>USD</CharCode><Value>1,0</Value></Valute></Rates>`,
			wantMsg: "failed to decode document",
		},
		{
			name:    "not xml",
			doc:     `{"rates": {}}`,
			wantMsg: "failed to decode document",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := ParseDocument([]byte(tc.doc))
			require.ErrorIs(t, err, domain.ErrMalformedDocument)
			require.ErrorContains(t, err, tc.wantMsg)
			require.Empty(t, snap.Rates)
			require.Empty(t, snap.Date)
		})
	}
}

func TestParseDecimalComma(t *testing.T) {
	v, err := ParseDecimalComma("75,1234")
	require.NoError(t, err)
	require.Equal(t, 75.1234, v)

	v, err = ParseDecimalComma("90.5")
	require.NoError(t, err)
	require.Equal(t, 90.5, v)

	_, err = ParseDecimalComma("1,2,3")
	require.Error(t, err)
}
