package card

import (
	"errors"
	"fmt"
	"time"
)

// Origin tells where a design configuration came from.
type Origin string

const (
	OriginClassic   Origin = "classic"
	OriginManaged   Origin = "managed"
	OriginGenerated Origin = "generated"
)

// Status of a managed template.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

const (
	BackgroundGradient = "gradient"
	BackgroundSolid    = "solid"
)

// built-in defaults used when a design omits a value
const (
	DefaultDesignFontColor   = "#000000"
	DefaultDesignFontSize    = 16
	DefaultDesignAccentColor = "#0ea5e9"
	DefaultDesignFontFamily  = "Inter, Arial, sans-serif"
	DefaultPrice             = "$2.99"
	DefaultQRColor           = "#000000"

	// fill for managed cards without a background image
	ManagedFallbackColor = "#f3f4f6"
)

var ErrInvalidDesign = errors.New("invalid design")

// Classic is a code-defined design. AI generated designs share the shape and
// additionally carry Layout and Decoration.
type Classic struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BackgroundStyle  string   `json:"bgStyle"`
	BackgroundColors []string `json:"bgColors"`
	TextColor        string   `json:"textColor"`
	AccentColor      string   `json:"accentColor"`
	BorderStyle      string   `json:"borderStyle"`
	FontWeight       string   `json:"fontWeight"`
	Layout           string   `json:"layout,omitempty"`
	Decoration       string   `json:"decoration,omitempty"`
}

// Settings is the typed view of a managed template's free-form config map.
type Settings struct {
	FontColor   string `json:"fontColor"`
	FontSize    int    `json:"fontSize"`
	AccentColor string `json:"accentColor"`
	FontFamily  string `json:"fontFamily"`
	Premium     bool   `json:"premium"`
	Price       string `json:"price"`
	QRColor     string `json:"qrColor"`
	QRLogoURL   string `json:"qrLogoUrl"`
}

// Managed is an admin-created template backed by the API.
type Managed struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Status            Status    `json:"status"`
	Settings          Settings  `json:"config"`
	BackgroundURL     string    `json:"background_url,omitempty"`
	BackBackgroundURL string    `json:"back_background_url,omitempty"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	CreatedBy         string    `json:"created_by,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DesignConfig is a tagged variant over the three design origins.
// Exactly one of Classic or Managed is set, matching Origin.
type DesignConfig struct {
	Origin  Origin   `json:"origin"`
	Classic *Classic `json:"classic,omitempty"`
	Managed *Managed `json:"managed,omitempty"`
}

func FromClassic(c Classic) DesignConfig {
	return DesignConfig{Origin: OriginClassic, Classic: &c}
}

func FromGenerated(c Classic) DesignConfig {
	return DesignConfig{Origin: OriginGenerated, Classic: &c}
}

func FromManaged(m Managed) DesignConfig {
	return DesignConfig{Origin: OriginManaged, Managed: &m}
}

// Validate checks the variant is well formed.
func (d DesignConfig) Validate() error {
	switch d.Origin {
	case OriginClassic, OriginGenerated:
		if d.Classic == nil || d.Managed != nil {
			return fmt.Errorf("%w: %s design needs a classic body", ErrInvalidDesign, d.Origin)
		}
		n := len(d.Classic.BackgroundColors)
		if n < 1 || n > 2 {
			return fmt.Errorf("%w: expected 1-2 background colors, got %d", ErrInvalidDesign, n)
		}
		if d.Classic.BackgroundStyle != BackgroundGradient && d.Classic.BackgroundStyle != BackgroundSolid {
			return fmt.Errorf("%w: background style %q", ErrInvalidDesign, d.Classic.BackgroundStyle)
		}
	case OriginManaged:
		if d.Managed == nil || d.Classic != nil {
			return fmt.Errorf("%w: managed design needs a managed body", ErrInvalidDesign)
		}
		if d.Managed.Name == "" {
			return fmt.Errorf("%w: name required", ErrInvalidDesign)
		}
	default:
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidDesign, d.Origin)
	}
	return nil
}

func (d DesignConfig) ID() string {
	if d.Managed != nil {
		return d.Managed.ID
	}
	if d.Classic != nil {
		return d.Classic.ID
	}
	return ""
}

func (d DesignConfig) Name() string {
	if d.Managed != nil {
		return d.Managed.Name
	}
	if d.Classic != nil {
		return d.Classic.Name
	}
	return ""
}

// Premium is only ever true for managed templates. It gates export, never preview.
func (d DesignConfig) Premium() bool {
	return d.Origin == OriginManaged && d.Managed != nil && d.Managed.Settings.Premium
}

// Price returns the display price of a premium managed template.
func (d DesignConfig) Price() string {
	if d.Managed == nil || d.Managed.Settings.Price == "" {
		return DefaultPrice
	}
	return d.Managed.Settings.Price
}

// Style is the canonical set of rendering fields every origin resolves to.
type Style struct {
	BackgroundStyle   string   `json:"backgroundStyle"`
	BackgroundColors  []string `json:"backgroundColors"`
	BackgroundURL     string   `json:"backgroundUrl,omitempty"`
	BackBackgroundURL string   `json:"backBackgroundUrl,omitempty"`
	TextColor         string   `json:"textColor"`
	AccentColor       string   `json:"accentColor"`
	FontFamily        string   `json:"fontFamily"`
	FontSize          int      `json:"fontSize"`
	BorderStyle       string   `json:"borderStyle"`
	FontWeight        string   `json:"fontWeight"`
	Layout            string   `json:"layout,omitempty"`
	Decoration        string   `json:"decoration,omitempty"`
	QRColor           string   `json:"qrColor"`
	QRLogoURL         string   `json:"qrLogoUrl,omitempty"`
}

// Style resolves d to canonical rendering fields, filling built-in defaults.
func (d DesignConfig) Style() Style {
	if d.Managed != nil {
		return managedStyle(*d.Managed)
	}
	if d.Classic != nil {
		return classicStyle(*d.Classic)
	}
	return Style{
		BackgroundStyle:  BackgroundSolid,
		BackgroundColors: []string{ManagedFallbackColor},
		TextColor:        DefaultDesignFontColor,
		AccentColor:      DefaultDesignAccentColor,
		FontFamily:       DefaultDesignFontFamily,
		FontSize:         DefaultDesignFontSize,
		QRColor:          DefaultQRColor,
	}
}

func classicStyle(c Classic) Style {
	colors := append([]string(nil), c.BackgroundColors...)
	if len(colors) == 0 {
		colors = []string{ManagedFallbackColor}
	}
	bg := c.BackgroundStyle
	if bg != BackgroundGradient || len(colors) < 2 {
		bg = BackgroundSolid
	}
	return Style{
		BackgroundStyle:  bg,
		BackgroundColors: colors,
		TextColor:        orDefault(c.TextColor, DefaultDesignFontColor),
		AccentColor:      orDefault(c.AccentColor, DefaultDesignAccentColor),
		FontFamily:       DefaultDesignFontFamily,
		FontSize:         DefaultDesignFontSize,
		BorderStyle:      orDefault(c.BorderStyle, "none"),
		FontWeight:       orDefault(c.FontWeight, "normal"),
		Layout:           c.Layout,
		Decoration:       c.Decoration,
		QRColor:          DefaultQRColor,
	}
}

func managedStyle(m Managed) Style {
	s := m.Settings
	size := s.FontSize
	if size <= 0 {
		size = DefaultDesignFontSize
	}
	return Style{
		BackgroundStyle:   BackgroundSolid,
		BackgroundColors:  []string{ManagedFallbackColor},
		BackgroundURL:     m.BackgroundURL,
		BackBackgroundURL: m.BackBackgroundURL,
		TextColor:         orDefault(s.FontColor, DefaultDesignFontColor),
		AccentColor:       orDefault(s.AccentColor, DefaultDesignAccentColor),
		FontFamily:        orDefault(s.FontFamily, DefaultDesignFontFamily),
		FontSize:          size,
		BorderStyle:       "rounded",
		FontWeight:        "bold",
		QRColor:           orDefault(s.QRColor, DefaultQRColor),
		QRLogoURL:         s.QRLogoURL,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
