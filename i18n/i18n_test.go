package i18n

import "testing"

func TestT_ActiveLanguageLookup(t *testing.T) {
	t.Cleanup(func() { SetLanguage(English) })

	SetLanguage(English)
	if got := T("deck.empty"); got != "The deck is empty" {
		t.Errorf("T(deck.empty) = %q", got)
	}

	SetLanguage(Chinese)
	if got := T("deck.empty"); got != "演示文稿为空" {
		t.Errorf("T(deck.empty) under Chinese = %q", got)
	}
}

func TestT_ParamsSplicedIn(t *testing.T) {
	t.Cleanup(func() { SetLanguage(English) })

	SetLanguage(English)
	if got := T("gen.success", 5); got != "Generated 5 slides" {
		t.Errorf("T(gen.success, 5) = %q", got)
	}

	SetLanguage(Chinese)
	if got := T("gen.success", 5); got != "已生成 5 张幻灯片" {
		t.Errorf("T(gen.success, 5) under Chinese = %q", got)
	}
}

func TestT_UnknownKeyComesBackVerbatim(t *testing.T) {
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q, want it verbatim", got)
	}
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"English": English,
		"简体中文":    Chinese,
		"":        English,
		"Klingon": English,
	}
	for in, want := range cases {
		if got := ParseLanguage(in); got != want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
