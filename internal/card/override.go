package card

// documented override defaults
const (
	DefaultFont        = "Arial, sans-serif"
	DefaultFontSize    = 16
	DefaultTextColor   = "#000000"
	DefaultAccentColor = "#0ea5e9"
)

// OverrideSet is a user's session-wide font and color choice. It is passed by
// value into every resolution; there is no shared override state.
type OverrideSet struct {
	Font        string `json:"font"`
	FontSize    int    `json:"fontSize"`
	TextColor   string `json:"textColor"`
	AccentColor string `json:"accentColor"`
}

// DefaultOverrides is the inactive override set.
func DefaultOverrides() OverrideSet {
	return OverrideSet{
		Font:        DefaultFont,
		FontSize:    DefaultFontSize,
		TextColor:   DefaultTextColor,
		AccentColor: DefaultAccentColor,
	}
}

// WithDefaults fills zero-valued fields, so a partially decoded set compares
// against defaults the same way an untouched form does.
func (o OverrideSet) WithDefaults() OverrideSet {
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.TextColor == "" {
		o.TextColor = DefaultTextColor
	}
	if o.AccentColor == "" {
		o.AccentColor = DefaultAccentColor
	}
	return o
}

// Active reports whether any field differs from its default. Activation is
// all-or-nothing: one changed field makes every field apply.
func (o OverrideSet) Active() bool {
	return o.Font != DefaultFont ||
		o.FontSize != DefaultFontSize ||
		o.TextColor != DefaultTextColor ||
		o.AccentColor != DefaultAccentColor
}

// Resolved holds the final typography and color values for a card.
type Resolved struct {
	Font        string `json:"font"`
	FontSize    int    `json:"fontSize"`
	TextColor   string `json:"textColor"`
	AccentColor string `json:"accentColor"`
}

// Resolve picks the override set wholesale when it is active, otherwise the
// style's own values.
func Resolve(s Style, o OverrideSet) Resolved {
	if o.Active() {
		return Resolved{
			Font:        o.Font,
			FontSize:    o.FontSize,
			TextColor:   o.TextColor,
			AccentColor: o.AccentColor,
		}
	}
	r := Resolved{
		Font:        orDefault(s.FontFamily, DefaultDesignFontFamily),
		FontSize:    s.FontSize,
		TextColor:   orDefault(s.TextColor, DefaultDesignFontColor),
		AccentColor: orDefault(s.AccentColor, DefaultDesignAccentColor),
	}
	if r.FontSize <= 0 {
		r.FontSize = DefaultDesignFontSize
	}
	return r
}
