package note

import (
	"strings"
	"testing"
	"time"
)

// 固定時刻（UTC）。UTC+8では 2024-03-15 22:30:45 になる
var fixedNow = time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"英数字はそのまま", "Meeting Notes 2024", "Meeting Notes 2024"},
		{"CJKはそのまま", "周记", "周记"},
		{"記号は除去", "a/b\\c:d*e?f", "abcdef"},
		{"前後の空白はトリム", "  hello  ", "hello"},
		{"ハイフンとアンダースコアは許可", "a-b_c", "a-b_c"},
		{"全て除去なら代替ラベル", "!!!???", DefaultLabel},
		{"空文字なら代替ラベル", "", DefaultLabel},
		{"空白のみなら代替ラベル", "   ", DefaultLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDeriveFilename(t *testing.T) {
	got := DeriveFilename("周记", fixedNow)
	want := "2024-03-15_223045_周记.md"
	if got != want {
		t.Errorf("DeriveFilename = %q, want %q", got, want)
	}
}

func TestDeriveFilename_DisallowedTitle(t *testing.T) {
	// 許可文字が1つもないタイトルでも空のステムにはならない
	got := DeriveFilename("///***", fixedNow)
	want := "2024-03-15_223045_" + DefaultLabel + ".md"
	if got != want {
		t.Errorf("DeriveFilename = %q, want %q", got, want)
	}
}

func TestDeriveFilename_Pure(t *testing.T) {
	// 同一入力からは常に同一の名前が導出される
	a := DeriveFilename("test", fixedNow)
	b := DeriveFilename("test", fixedNow)
	if a != b {
		t.Errorf("expected deterministic filename, got %q and %q", a, b)
	}
}

func TestRenderBody(t *testing.T) {
	body := RenderBody("周记", "今天很好", fixedNow)

	if !strings.HasPrefix(body, "# 周记\n\n") {
		t.Errorf("body should start with heading, got %q", body)
	}
	if !strings.Contains(body, "今天很好") {
		t.Errorf("body should contain content verbatim, got %q", body)
	}
	if !strings.Contains(body, "---") {
		t.Errorf("body should contain separator, got %q", body)
	}
	if !strings.Contains(body, "2024-03-15 22:30:45") {
		t.Errorf("body should contain UTC+8 creation time, got %q", body)
	}
}

func TestRenderBody_NoEscaping(t *testing.T) {
	// contentは信頼済みプレーンテキストとしてそのまま埋め込む
	content := "# nested heading\n<b>html</b>"
	body := RenderBody("t", content, fixedNow)
	if !strings.Contains(body, content) {
		t.Errorf("content must not be escaped, got %q", body)
	}
}
