package view

// CategoryInfo carries the presentation attributes for a post category badge.
type CategoryInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categories = map[string]CategoryInfo{
	"romantic": {Label: "Lãng mạn", Icon: "ri-heart-fill", Color: "bg-red-100 text-red-600"},
	"sweet":    {Label: "Ngọt ngào", Icon: "ri-hearts-line", Color: "bg-pink-100 text-pink-600"},
	"funny":    {Label: "Hài hước", Icon: "ri-emotion-laugh-line", Color: "bg-yellow-100 text-yellow-600"},
}

// Category resolves a stored category slug to its badge. Slugs without a
// mapping render as the generic "Khác" badge.
func Category(slug string) CategoryInfo {
	if info, ok := categories[slug]; ok {
		return info
	}
	return CategoryInfo{Label: "Khác", Icon: "ri-heart-line", Color: "bg-gray-100 text-gray-600"}
}
