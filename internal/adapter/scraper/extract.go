package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"LotterySync/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	thaiDatePattern  = regexp.MustCompile(`(\d{1,2})\s*(มกราคม|กุมภาพันธ์|มีนาคม|เมษายน|พฤษภาคม|มิถุนายน|กรกฎาคม|สิงหาคม|กันยายน|ตุลาคม|พฤศจิกายน|ธันวาคม)\s*(\d{4})`)
	isoDatePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	groupedAmount    = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
)

// thaiMonths 泰文月份 → 月序号
var thaiMonths = map[string]int{
	"มกราคม": 1, "กุมภาพันธ์": 2, "มีนาคม": 3, "เมษายน": 4,
	"พฤษภาคม": 5, "มิถุนายน": 6, "กรกฎาคม": 7, "สิงหาคม": 8,
	"กันยายน": 9, "ตุลาคม": 10, "พฤศจิกายน": 11, "ธันวาคม": 12,
}

// buddhistEraOffset 佛历与公历的年份差
const buddhistEraOffset = 543

// Extractor 从抓取到的文档中提取候选开奖结果。
// 支持两种结构：JSON 数组/对象，以及包含奖项表格的 HTML 页面；无法识别时返回空切片
type Extractor struct {
	dateSelector string
	logger       *logrus.Logger
}

// NewExtractor dateSelector 为空时自动识别开奖日期
func NewExtractor(dateSelector string, logger *logrus.Logger) *Extractor {
	return &Extractor{dateSelector: dateSelector, logger: logger}
}

// Extract 按文档首字符区分 JSON / HTML
func (e *Extractor) Extract(document []byte) ([]model.ResultInput, error) {
	trimmed := bytes.TrimSpace(document)
	if len(trimmed) == 0 {
		return []model.ResultInput{}, nil
	}
	switch trimmed[0] {
	case '[', '{':
		return e.extractJSON(trimmed)
	default:
		return e.extractHTML(trimmed)
	}
}

// flexString 兼容字符串或数字
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

type jsonCandidate struct {
	DrawDate    flexString `json:"draw_date"`
	Period      flexString `json:"period"`
	PrizeType   flexString `json:"prize_type"`
	PrizeNumber flexString `json:"prize_number"`
	PrizeAmount *int64     `json:"prize_amount"`
}

type jsonEnvelope struct {
	DrawDate flexString      `json:"draw_date"`
	Results  []jsonCandidate `json:"results"`
}

func (e *Extractor) extractJSON(doc []byte) ([]model.ResultInput, error) {
	var items []jsonCandidate
	var defaultDate string
	if doc[0] == '[' {
		if err := json.Unmarshal(doc, &items); err != nil {
			return nil, fmt.Errorf("解析JSON结果失败: %w", err)
		}
	} else {
		var env jsonEnvelope
		if err := json.Unmarshal(doc, &env); err != nil {
			return nil, fmt.Errorf("解析JSON结果失败: %w", err)
		}
		items = env.Results
		defaultDate = string(env.DrawDate)
	}

	out := make([]model.ResultInput, 0, len(items))
	for _, it := range items {
		drawDate := strings.TrimSpace(string(it.DrawDate))
		if drawDate == "" {
			drawDate = defaultDate
		}
		out = append(out, model.ResultInput{
			DrawDate:    drawDate,
			Period:      strings.TrimSpace(string(it.Period)),
			PrizeType:   strings.TrimSpace(string(it.PrizeType)),
			PrizeNumber: strings.TrimSpace(string(it.PrizeNumber)),
			PrizeAmount: it.PrizeAmount,
		})
	}
	return out, nil
}

func (e *Extractor) extractHTML(doc []byte) ([]model.ResultInput, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	drawDate := e.findDrawDate(root)
	if drawDate == "" {
		e.logger.Warn("页面中未识别到开奖日期，跳过解析")
		return []model.ResultInput{}, nil
	}

	out := make([]model.ResultInput, 0)
	seen := make(map[string]bool)
	for _, tr := range findAll(root, byAtom(atom.Tr)) {
		cells := rowCells(tr)
		if len(cells) < 2 {
			continue
		}
		prizeType := cells[0]
		if prizeType == "" || isNumberToken(prizeType) {
			continue
		}

		var amount *int64
		var numbers []string
		for _, c := range cells[1:] {
			if v, ok := parseAmount(c); ok {
				amount = &v
				continue
			}
			numbers = append(numbers, numberTokens(c)...)
		}
		for _, n := range numbers {
			key := prizeType + "|" + n
			if seen[key] {
				continue
			}
			seen[key] = true
			candidate := model.ResultInput{DrawDate: drawDate, PrizeType: prizeType, PrizeNumber: n}
			if amount != nil {
				v := *amount
				candidate.PrizeAmount = &v
			}
			out = append(out, candidate)
		}
	}
	e.logger.WithFields(logrus.Fields{
		"draw_date":  drawDate,
		"candidates": len(out),
	}).Debug("HTML解析完成")
	return out, nil
}

// findDrawDate 依次尝试：配置的选择器、<time>、标题类元素中的日期文本
func (e *Extractor) findDrawDate(root *html.Node) string {
	if e.dateSelector != "" {
		for _, n := range querySelectorAll(root, e.dateSelector) {
			if t := textOf(n); t != "" {
				if d := matchDate(t); d != "" {
					return d
				}
				return t
			}
		}
	}
	for _, n := range findAll(root, byAtom(atom.Time)) {
		if v := strings.TrimSpace(attr(n, "datetime")); v != "" {
			return v
		}
		if t := textOf(n); t != "" {
			return t
		}
	}
	for _, a := range []atom.Atom{atom.H1, atom.H2, atom.H3, atom.Caption, atom.Title} {
		for _, n := range findAll(root, byAtom(a)) {
			if d := matchDate(textOf(n)); d != "" {
				return d
			}
		}
	}
	return ""
}

// matchDate 从文本中识别开奖日期，统一转为 ISO（YYYY-MM-DD），
// 使 draw_date 按文本排序即按日历排序；佛历年份换算为公历
func matchDate(s string) string {
	if m := thaiDatePattern.FindStringSubmatch(s); m != nil {
		if d, ok := isoDate(m[3], thaiMonths[m[2]], m[1]); ok {
			return d
		}
	}
	if m := isoDatePattern.FindString(s); m != "" {
		return m
	}
	// 泰国习惯 日/月/年
	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		if d, ok := isoDate(m[3], month, m[1]); ok {
			return d
		}
	}
	return ""
}

// isoDate 校验并格式化日期，非法日期（如 31/02）返回 false
func isoDate(yearText string, month int, dayText string) (string, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return "", false
	}
	if year >= 2400 {
		year -= buddhistEraOffset
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if month < 1 || month > 12 || t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// rowCells 返回一行中 th/td 的文本
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, textOf(c))
		}
	}
	return cells
}

// parseAmount 识别奖金单元格，如 "6,000,000 บาท"、"2,000,000"
func parseAmount(cell string) (int64, bool) {
	lower := strings.ToLower(cell)
	if !strings.Contains(lower, "บาท") && !strings.Contains(lower, "baht") && !groupedAmount.MatchString(cell) {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cell)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numberTokens 单元格中 2~6 位的纯数字串，一格多个号码时逐个返回
func numberTokens(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ' ' || r == ',' || r == '|' || r == '/' || r == '\n' || r == '\t'
	})
	var out []string
	for _, f := range fields {
		if len(f) >= 2 && len(f) <= 6 && isNumberToken(f) {
			out = append(out, f)
		}
	}
	return out
}

func isNumberToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
