package render

import (
	"net/url"
	"strings"
)

// IndexPath is the catalog URL of locale below basePath.
func IndexPath(basePath, locale string) string {
	return strings.TrimRight(basePath, "/") + "/" + url.PathEscape(locale) + "/"
}

// CalculatorPath is the page URL of calculator id in locale.
func CalculatorPath(basePath, locale, id string) string {
	return IndexPath(basePath, locale) + url.PathEscape(id)
}

// SearchPath is the index URL with a search query.
func SearchPath(basePath, locale, query string) string {
	return IndexPath(basePath, locale) + "?q=" + url.QueryEscape(query)
}
