// Package note provides pure encoding helpers for memory notes.
package note

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Zone はサービス表示用タイムゾーン（UTC+8固定）
// 保存先のVaultは利用者のローカル時刻（中国標準時）で運用される
var Zone = time.FixedZone("UTC+8", 8*60*60)

const (
	// DefaultLabel はタイトルが全て除去された場合の代替ラベル
	DefaultLabel = "未命名"

	// Extension はノートファイルの拡張子
	Extension = ".md"

	// stampLayout はファイル名の日時スタンプ形式
	// 旧版では %Y%m%d と %Y-%m-%d_%H%M%S が混在していたが後者に統一
	stampLayout = "2006-01-02_150405"

	// createdLayout は本文に埋め込む作成日時の表示形式
	createdLayout = "2006-01-02 15:04:05"
)

// SanitizeTitle はタイトルから許可文字以外を除去する
// 許可: 文字（CJK含む）、数字、空白、ハイフン、アンダースコア
// 除去後に空になった場合はDefaultLabelを返す
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		return DefaultLabel
	}
	return s
}

// DeriveFilename はタイトルと時刻からファイル名を導出する
// 同一秒・同一タイトルの保存は同名となり上書きされる（許容済みの衝突方針）
func DeriveFilename(title string, now time.Time) string {
	stamp := now.In(Zone).Format(stampLayout)
	return fmt.Sprintf("%s_%s%s", stamp, SanitizeTitle(title), Extension)
}

// RenderBody はノート本文をMarkdownとして組み立てる
// contentはプレーンテキスト/Markdownとして信頼し、エスケープしない
func RenderBody(title, content string, now time.Time) string {
	created := now.In(Zone).Format(createdLayout)
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n---\n")
	b.WriteString("创建时间: ")
	b.WriteString(created)
	b.WriteString(" (UTC+8)\n")
	return b.String()
}
