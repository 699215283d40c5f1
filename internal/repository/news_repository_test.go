package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The paging total must be computed over the same WHERE clause as the page
// itself, so a featured or search filter never reports the unfiltered count.

func TestNewsFilterWhere(t *testing.T) {
	where, args := NewsFilter{}.where()
	assert.Equal(t, " WHERE is_active=1", where)
	assert.Empty(t, args)

	featured := true
	where, args = NewsFilter{Featured: &featured}.where()
	assert.Equal(t, " WHERE is_active=1 AND is_featured=?", where)
	assert.Equal(t, []any{true}, args)

	where, args = NewsFilter{Search: "qurilish", Lang: "ru"}.where()
	assert.Equal(t, " WHERE is_active=1 AND (title_ru LIKE ? OR content_ru LIKE ?)", where)
	assert.Equal(t, []any{"%qurilish%", "%qurilish%"}, args)

	where, args = NewsFilter{Featured: &featured, Search: "norma", Lang: "en"}.where()
	assert.Equal(t, " WHERE is_active=1 AND is_featured=? AND (title_en LIKE ? OR content_en LIKE ?)", where)
	assert.Equal(t, []any{true, "%norma%", "%norma%"}, args)
}

func TestAnnouncementWhere(t *testing.T) {
	where, args := announcementWhere("", "")
	assert.Equal(t, " WHERE is_active=1", where)
	assert.Empty(t, args)

	where, args = announcementWhere("tanlov", "uz")
	assert.Equal(t, " WHERE is_active=1 AND (title_uz LIKE ? OR content_uz LIKE ?)", where)
	assert.Equal(t, []any{"%tanlov%", "%tanlov%"}, args)

	// Unknown language codes fall back to the uz columns.
	where, _ = announcementWhere("tanlov", "de")
	assert.Equal(t, " WHERE is_active=1 AND (title_uz LIKE ? OR content_uz LIKE ?)", where)
}
