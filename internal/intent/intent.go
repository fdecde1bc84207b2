// Package intent implements the search-intent heuristic for free text.
package intent

import (
	"regexp"
	"strings"
)

// Extractor は自由文から検索語を抽出する
// 戻り値okがfalseの場合、検索の意図なしと判定されたことを示す
// ヒューリスティックは差し替え可能なコラボレーターであり、精度は保証しない
type Extractor interface {
	Extract(text string) (keyword string, ok bool)
}

// maxKeywordLen は抽出するキーワードの最大文字数（rune）
const maxKeywordLen = 24

// quotedPattern は引用符で囲まれた検索語（最優先で採用）
var quotedPattern = regexp.MustCompile(`[「『"“']([^」』"”']+)[」』"”']`)

// triggerPattern は検索意図を示すトリガー語
var triggerPattern = regexp.MustCompile(`(?i)(回忆|回顾|搜索|查找|找一下|找找|想起|记得|search|find|recall|remember|look up)`)

// leadingParticles はトリガー語直後の助詞・前置詞（キーワードから除去）
var leadingParticles = []string{"一下", "关于", "到", "下", "about ", "for ", "the ", "my ", "me "}

// clauseEnders はキーワードの区切りとなる句読点
const clauseEnders = "，。、,.!?？！;；:：\n"

// RegexExtractor は正規表現ベースのデフォルトExtractor実装
type RegexExtractor struct{}

// NewRegexExtractor はRegexExtractorを作成する
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract は検索意図の有無を判定し、検索語を抽出する
func (e *RegexExtractor) Extract(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	loc := triggerPattern.FindStringIndex(text)
	if loc == nil {
		// トリガー語なし: 検索の意図なし
		return "", false
	}

	// 引用符内の語があれば最優先
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		if kw := clampKeyword(m[1]); kw != "" {
			return kw, true
		}
	}

	// トリガー語の後続テキストから抽出
	rest := strings.TrimSpace(text[loc[1]:])
	for changed := true; changed; {
		changed = false
		for _, p := range leadingParticles {
			if strings.HasPrefix(rest, p) {
				rest = strings.TrimSpace(strings.TrimPrefix(rest, p))
				changed = true
			}
		}
	}

	// 最初の句読点までを1句として切り出す
	if idx := strings.IndexAny(rest, clauseEnders); idx >= 0 {
		rest = rest[:idx]
	}

	kw := clampKeyword(rest)
	if kw == "" {
		return "", false
	}
	return kw, true
}

// clampKeyword は前後の空白を除去し最大長に切り詰める
func clampKeyword(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxKeywordLen {
		s = string(runes[:maxKeywordLen])
	}
	return strings.TrimSpace(s)
}
