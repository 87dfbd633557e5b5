package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceSet_DeduplicatesInOrder(t *testing.T) {
	set := NewSourceSet()

	assert.True(t, set.Add("https://e-qanun.az/framework/8"))
	assert.True(t, set.Add("https://e-qanun.az/framework/46"))
	assert.False(t, set.Add("https://e-qanun.az/framework/8"))
	assert.False(t, set.Add(""))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{
		"https://e-qanun.az/framework/8",
		"https://e-qanun.az/framework/46",
	}, set.URLs())
}

func TestLanguageTag(t *testing.T) {
	assert.True(t, LanguageTag{Code: "az"}.Supported())
	assert.True(t, LanguageTag{Code: "az"}.Azerbaijani())
	assert.True(t, LanguageTag{Code: "de"}.Supported())
	assert.False(t, LanguageTag{Code: "de"}.Azerbaijani())
	assert.False(t, LanguageTag{Code: "tr"}.Supported())
}
