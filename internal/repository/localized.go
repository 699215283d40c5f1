package repository

import "github.com/tmsiti/institute-api/internal/i18n"

// searchColumn returns the column name "<prefix>_<lang>" for substring
// searches in the request's active language.  The language code is checked
// against the fixed schema set before being spliced into SQL; anything
// unknown falls back to the uz column.
func searchColumn(prefix, lang string) string {
	switch lang {
	case i18n.LangUz, i18n.LangRu, i18n.LangEn:
		return prefix + "_" + lang
	}
	return prefix + "_" + i18n.LangUz
}

// like wraps a search term for a LIKE substring match.
func like(term string) string { return "%" + term + "%" }
