package model

import "strings"

// 常见奖项（泰国彩票）
const (
	PrizeFirst  = "รางวัลที่ 1"   // 头奖
	PrizeFront3 = "เลขหน้า 3 ตัว" // 前三位
	PrizeBack3  = "เลขท้าย 3 ตัว" // 后三位
	PrizeBack2  = "เลขท้าย 2 ตัว" // 后两位
)

// RankOther 未知奖项统一排在最后
const RankOther = 5

var prizeRanks = map[string]int{
	normalizePrize(PrizeFirst):  1,
	"first":                     1,
	"firstprize":                1,
	normalizePrize(PrizeFront3): 2,
	"front3":                    2,
	normalizePrize(PrizeBack3):  3,
	"back3":                     3,
	normalizePrize(PrizeBack2):  4,
	"back2":                     4,
}

// PrizeRank 奖项排序权重：头奖=1，前三=2，后三=3，后二=4，其它=5
func PrizeRank(prizeType string) int {
	if r, ok := prizeRanks[normalizePrize(prizeType)]; ok {
		return r
	}
	return RankOther
}

// normalizePrize 小写并去掉空白、连字符、下划线，便于中英文别名匹配
func normalizePrize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '_', '\u00a0':
			return -1
		}
		return r
	}, s)
}
