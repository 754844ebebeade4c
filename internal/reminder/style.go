package reminder

import "household-hub/internal/model"

// Style is the render hint the dashboard uses for a domain.
type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var fallbackStyle = Style{Icon: "🔔", Color: "gray"}

var domainStyles = map[model.Domain]Style{
	model.DomainPlants:    {Icon: "🌱", Color: "green"},
	model.DomainFinance:   {Icon: "💷", Color: "blue"},
	model.DomainCooking:   {Icon: "🍳", Color: "orange"},
	model.DomainReading:   {Icon: "📚", Color: "purple"},
	model.DomainCoding:    {Icon: "💻", Color: "slate"},
	model.DomainHousehold: {Icon: "🏠", Color: "amber"},
	model.DomainCustom:    {Icon: "📌", Color: "pink"},
}

// StyleFor returns the icon and colour of d, or a neutral fallback for
// unknown and legacy domains.
func StyleFor(d model.Domain) Style {
	if s, ok := domainStyles[d]; ok {
		return s
	}
	return fallbackStyle
}
