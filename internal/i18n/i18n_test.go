package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9", Arabic))
	assert.Equal(t, Arabic, Negotiate("ar-EG", English))
	assert.Equal(t, Arabic, Negotiate("", Arabic))
	assert.Equal(t, English, Negotiate("", English))
	assert.Equal(t, English, Negotiate("not a header;;", English))
}

func TestTranslatorFormatsAndFallsBack(t *testing.T) {
	en := New(English)
	assert.Equal(t, "Must be at least 50 characters", en.T(MsgMinLength, 50))
	assert.Equal(t, "unknown_key", en.T("unknown_key"))

	ar := New("fr")
	assert.Equal(t, Arabic, ar.Locale())
	assert.NotEmpty(t, ar.T(MsgRequired))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalogs[English] {
		_, ok := catalogs[Arabic][key]
		assert.True(t, ok, "arabic catalog misses %q", key)
	}
}
