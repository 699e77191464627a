package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"fa", Farsi},
		{"en", English},
		{"uk", Ukrainian},
		{"", English},
		{"UK", Ukrainian},
		{"fa-IR", Farsi},
		{"uk_UA", Ukrainian},
		{"en-GB", English},
		{"de", English},
		{"de-DE,uk;q=0.8", Ukrainian},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestLangDetails(t *testing.T) {
	assert.True(t, Farsi.RTL())
	assert.False(t, Ukrainian.RTL())
	assert.Equal(t, "Iranians", Farsi.Audience())
	assert.Equal(t, "users", English.Audience())
	assert.Equal(t, "Ukrainians", Ukrainian.Audience())
	assert.Equal(t, English, Farsi.Next())
	assert.Equal(t, Farsi, Ukrainian.Next())
}

func TestTextFallback(t *testing.T) {
	txt := Text{English: "Hello", Farsi: "سلام"}
	assert.Equal(t, "سلام", txt.Get(Farsi))
	assert.Equal(t, "Hello", txt.Get(Ukrainian))

	onlyUK := Text{Ukrainian: "Привіт"}
	assert.Equal(t, "Привіт", onlyUK.Get(English))
	assert.Equal(t, "", Text(nil).Get(English))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "The received response is not valid.", T(English, MsgInvalidResponse))
	assert.Equal(t, "Отримана відповідь недійсна.", T(Ukrainian, MsgInvalidResponse))
	assert.Equal(t, "پاسخ خالی دریافت شد.", T(Farsi, MsgEmptyResponse))
	assert.Equal(t, "3 uses left", T(English, MsgUsesLeft, 3))
}

func TestNative(t *testing.T) {
	assert.Equal(t, "فارسی", Farsi.Native())
	assert.Equal(t, "English", English.Native())
	assert.Equal(t, "Українська", Ukrainian.Native())
}

func TestTranslationsComplete(t *testing.T) {
	fa, uk := translations[Farsi], translations[Ukrainian]
	assert.Len(t, uk, len(fa))
	for key := range fa {
		assert.Contains(t, uk, key)
	}
	assert.Equal(t, "Question 2 of 7", T(English, MsgProgress, 2, 7))
}
