package sitegen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
)

func TestEncodeIndex_InternalFields_NeverSerialized(t *testing.T) {
	a := &article.Article{
		Title:    "Kreatin",
		Date:     "2026-02-10",
		Tags:     []string{"supplemente"},
		Category: "ernaehrung",
		Summary:  "Kurz.",
		Keywords: []string{},
		Content:  "Volltext",
		Filename: "geheim.html",
		RawHTML:  "<h1>geheim</h1>",
	}
	a.Finalize("kreatin")

	out, err := EncodeIndex([]*article.Article{a})
	require.NoError(t, err)
	require.NotContains(t, string(out), "geheim")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)

	entry := decoded[0]
	require.Equal(t, "kreatin", entry["slug"])
	require.Equal(t, "/pages/kreatin.html", entry["url"])
	require.Equal(t, "Kreatin", entry["title"])
	require.NotContains(t, entry, "Filename")
	require.NotContains(t, entry, "RawHTML")
}

func TestEncodeIndex_EmptySet_EmptyArray(t *testing.T) {
	out, err := EncodeIndex(nil)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(out))
}

func TestEncodeIndex_InputOrder_Preserved(t *testing.T) {
	first := &article.Article{Title: "Neu", Date: "2026-02-10"}
	first.Finalize("neu")
	second := &article.Article{Title: "Alt", Date: "2025-01-01"}
	second.Finalize("alt")

	out, err := EncodeIndex([]*article.Article{first, second})
	require.NoError(t, err)

	var decoded []article.Article
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "neu", decoded[0].Slug)
	require.Equal(t, "alt", decoded[1].Slug)
}
