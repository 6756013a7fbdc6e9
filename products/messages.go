package products

import "github.com/user/product-catalog-go/language"

// Message keys for localized status messages.
const (
	msgLiked    = "productLiked"
	msgUnliked  = "productUnliked"
	msgNotFound = "productNotFound"
)

// messages holds the per-language status message table. Lookup is keyed by
// the language threaded through the request, never by shared mutable state.
var messages = map[string]map[string]string{
	language.English: {
		msgLiked:    "Product liked",
		msgUnliked:  "Product unliked",
		msgNotFound: "Product not found",
	},
	language.Vietnamese: {
		msgLiked:    "Đã thích sản phẩm",
		msgUnliked:  "Đã bỏ thích sản phẩm",
		msgNotFound: "Không tìm thấy sản phẩm",
	},
}

// message returns the localized status message for key, falling back to
// English for unknown languages.
func message(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages[language.English][key]
}
