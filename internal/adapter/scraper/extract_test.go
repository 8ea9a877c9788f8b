package scraper

import (
	"testing"

	"LotterySync/internal/model"
	"LotterySync/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateFromSelector(t *testing.T) {
	page := `<html><body>
<div class="draw-date">ผลรางวัล งวด 1 พฤศจิกายน 2568</div>
<table><tr><td>` + model.PrizeBack2 + `</td><td>45</td></tr></table>
</body></html>`

	got, err := NewExtractor("div.draw-date", testutil.Logger()).Extract([]byte(page))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-11-01", got[0].DrawDate)
	assert.Equal(t, "45", got[0].PrizeNumber)
	assert.Nil(t, got[0].PrizeAmount)
}

func TestMatchDateNormalizesToISO(t *testing.T) {
	cases := map[string]string{
		"ผลสลาก งวดวันที่ 16 ตุลาคม 2568": "2025-10-16",
		"งวด 1 พฤศจิกายน 2568":            "2025-11-01",
		"ผลสลาก 16/10/2025":               "2025-10-16",
		"draw 2025-11-01":                 "2025-11-01",
		"31/02/2025":                      "",
		"ไม่มีวันที่":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, matchDate(in), in)
	}
	// 按文本排序与日历顺序一致
	assert.Less(t, matchDate("16 ตุลาคม 2568"), matchDate("1 พฤศจิกายน 2568"))
}

func TestExtractSlashDateTitle(t *testing.T) {
	page := `<html><head><title>ผลสลาก 16/10/2025</title></head><body>
<table><tr><td>` + model.PrizeFirst + `</td><td>123456</td></tr></table>
</body></html>`

	got, err := NewExtractor("", testutil.Logger()).Extract([]byte(page))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-10-16", got[0].DrawDate)
	assert.NotContains(t, model.DerivePeriod(got[0].DrawDate), "/")
}

func TestExtractDateFromTimeElement(t *testing.T) {
	page := `<html><body>
<time datetime="2025-11-01">1 Nov 2025</time>
<table><tr><th>First prize</th><td>000123</td></tr></table>
</body></html>`

	got, err := NewExtractor("", testutil.Logger()).Extract([]byte(page))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-11-01", got[0].DrawDate)
	assert.Equal(t, "First prize", got[0].PrizeType)
	assert.Equal(t, "000123", got[0].PrizeNumber)
}

func TestExtractUnrecognizedPage(t *testing.T) {
	for _, page := range []string{
		`<html><body><p>hello</p></body></html>`,
		`<html><body><h1>2025-11-01</h1><p>no table here</p></body></html>`,
		`<html><body><table><tr><td>` + model.PrizeFirst + `</td><td>123456</td></tr></table></body></html>`,
		"   ",
	} {
		got, err := NewExtractor("", testutil.Logger()).Extract([]byte(page))
		require.NoError(t, err)
		assert.Empty(t, got, page)
	}
}

func TestExtractJSONArray(t *testing.T) {
	doc := `[
  {"draw_date": "2025-11-01", "prize_type": "first", "prize_number": "000123", "prize_amount": 6000000},
  {"draw_date": "2025-11-01", "prize_type": "back2", "prize_number": 45}
]`
	got, err := NewExtractor("", testutil.Logger()).Extract([]byte(doc))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "000123", got[0].PrizeNumber)
	require.NotNil(t, got[0].PrizeAmount)
	assert.Equal(t, int64(6000000), *got[0].PrizeAmount)
	assert.Equal(t, "45", got[1].PrizeNumber)
	assert.Nil(t, got[1].PrizeAmount)
}

func TestExtractJSONEnvelope(t *testing.T) {
	doc := `{"draw_date": "2025-11-01", "results": [
  {"prize_type": "front3", "prize_number": "012"},
  {"draw_date": "2025-11-02", "period": "extra", "prize_type": "back3", "prize_number": "999"}
]}`
	got, err := NewExtractor("", testutil.Logger()).Extract([]byte(doc))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-11-01", got[0].DrawDate)
	assert.Equal(t, "2025-11-02", got[1].DrawDate)
	assert.Equal(t, "extra", got[1].Period)
}

func TestExtractMalformedJSON(t *testing.T) {
	_, err := NewExtractor("", testutil.Logger()).Extract([]byte(`[{"draw_date": `))
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		want int64
		ok   bool
	}{
		"6,000,000 บาท": {6000000, true},
		"2,000":         {2000, true},
		"100 Baht":      {100, true},
		"123456":        {0, false},
		"012 345":       {0, false},
		"บาท":           {0, false},
	}
	for in, c := range cases {
		got, ok := parseAmount(in)
		assert.Equal(t, c.ok, ok, in)
		assert.Equal(t, c.want, got, in)
	}
}

func TestNumberTokens(t *testing.T) {
	assert.Equal(t, []string{"012", "345"}, numberTokens("012 345"))
	assert.Equal(t, []string{"07"}, numberTokens("07"))
	assert.Empty(t, numberTokens("1234567"))
	assert.Empty(t, numberTokens("x12"))
}
