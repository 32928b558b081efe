package dashboard

// Icon names the glyph shown next to a category group.
type Icon string

const (
	IconActivity    Icon = "activity"
	IconBriefcase   Icon = "briefcase"
	IconDollarSign  Icon = "dollar-sign"
	IconHome        Icon = "home"
	IconShoppingBag Icon = "shopping-bag"
	IconBarChart    Icon = "bar-chart"

	// DefaultIcon is used for groups without a dedicated icon.
	DefaultIcon = IconActivity
)

var groupIcons = map[string]Icon{
	"GDP":      IconActivity,
	"Labour":   IconBriefcase,
	"Money":    IconDollarSign,
	"Housing":  IconHome,
	"Consumer": IconShoppingBag,
	"Business": IconBarChart,
}

var iconGlyphs = map[Icon]string{
	IconActivity:    "∿",
	IconBriefcase:   "⚒",
	IconDollarSign:  "$",
	IconHome:        "⌂",
	IconShoppingBag: "⛍",
	IconBarChart:    "▤",
}

// IconFor maps a category group to its icon, falling back to DefaultIcon.
func IconFor(group string) Icon {
	if icon, ok := groupIcons[group]; ok {
		return icon
	}
	return DefaultIcon
}

// Glyph is a single-character stand-in for the icon, used in terminal output.
func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[DefaultIcon]
}
