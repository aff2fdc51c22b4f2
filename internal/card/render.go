package card

// Side of a physical card.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

func (s Side) Valid() bool {
	return s == SideFront || s == SideBack
}

const (
	BackgroundKindImage    = "image"
	BackgroundKindGradient = "gradient"
	BackgroundKindSolid    = "solid"

	GradientAngle = 135

	DefaultQRSize        = 120
	DefaultCompactQRSize = 68
	// MaxQRSize is the card height; a larger code cannot fit on the card.
	MaxQRSize = 400
)

// back side markers, one per contact field
const (
	MarkerEmail   = "mail"
	MarkerPhone   = "phone"
	MarkerWebsite = "globe"
	MarkerAddress = "map-pin"
)

// Options tune a single render.
type Options struct {
	// Compact shrinks the back QR to QRSize. A negative QRSize hides it.
	Compact bool `json:"compact"`
	QRSize  int  `json:"qrSize"`
	// Print drops placeholders and empty fields; used for export.
	Print bool `json:"print"`
}

type Background struct {
	Kind   string   `json:"kind"`
	URL    string   `json:"url,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Angle  int      `json:"angle,omitempty"`
}

type Block struct {
	Role        string `json:"role"`
	Text        string `json:"text"`
	Color       string `json:"color"`
	Marker      string `json:"marker,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type QRBlock struct {
	Payload string `json:"payload"`
	Size    int    `json:"size"`
	Color   string `json:"color"`
	LogoURL string `json:"logoUrl,omitempty"`
	Large   bool   `json:"large"`
}

// Layout is everything a view needs to paint one side of a card.
type Layout struct {
	Side        Side       `json:"side"`
	DesignID    string     `json:"designId"`
	Origin      Origin     `json:"origin"`
	Background  Background `json:"background"`
	Font        string     `json:"font"`
	FontSize    int        `json:"fontSize"`
	TextColor   string     `json:"textColor"`
	AccentColor string     `json:"accentColor"`
	BorderStyle string     `json:"borderStyle"`
	FontWeight  string     `json:"fontWeight"`
	Layout      string     `json:"layout,omitempty"`
	Decoration  string     `json:"decoration,omitempty"`
	Logo        string     `json:"logo,omitempty"`
	Blocks      []Block    `json:"blocks"`
	QR          *QRBlock   `json:"qr,omitempty"`
	// Badge is a screen-only label ("Premium" or "Free") for managed designs.
	Badge string `json:"badge,omitempty"`
}

// Render maps card data, a design and the user's overrides to a layout for
// one side. It has no side effects.
func Render(data BusinessCardData, design DesignConfig, overrides OverrideSet, side Side, opts Options) Layout {
	style := design.Style()
	res := Resolve(style, overrides)

	l := Layout{
		Side:        side,
		DesignID:    design.ID(),
		Origin:      design.Origin,
		Font:        res.Font,
		FontSize:    res.FontSize,
		TextColor:   res.TextColor,
		AccentColor: res.AccentColor,
		BorderStyle: style.BorderStyle,
		FontWeight:  style.FontWeight,
		Layout:      style.Layout,
		Decoration:  style.Decoration,
		Blocks:      []Block{},
	}
	if design.Origin == OriginManaged {
		if design.Premium() {
			l.Badge = "Premium"
		} else {
			l.Badge = "Free"
		}
	}

	if side == SideBack {
		l.Background = background(style, style.BackBackgroundURL, style.BackgroundURL)
		l.Blocks = backBlocks(data, res, opts)
		l.QR = qrBlock(data, style, opts)
		return l
	}

	l.Background = background(style, style.BackgroundURL)
	l.Logo = data.Logo
	l.Blocks = frontBlocks(data, res, opts)
	return l
}

// background prefers the first non-empty image url over the programmatic fill.
func background(s Style, urls ...string) Background {
	for _, u := range urls {
		if u != "" {
			return Background{Kind: BackgroundKindImage, URL: u}
		}
	}
	if s.BackgroundStyle == BackgroundGradient && len(s.BackgroundColors) >= 2 {
		return Background{
			Kind:   BackgroundKindGradient,
			Colors: []string{s.BackgroundColors[0], s.BackgroundColors[1]},
			Angle:  GradientAngle,
		}
	}
	color := ManagedFallbackColor
	if len(s.BackgroundColors) > 0 {
		color = s.BackgroundColors[0]
	}
	return Background{Kind: BackgroundKindSolid, Colors: []string{color}}
}

func frontBlocks(d BusinessCardData, r Resolved, opts Options) []Block {
	blocks := []Block{}
	add := func(role, value, placeholder, color string) {
		if b, ok := block(role, value, placeholder, color, "", opts.Print); ok {
			blocks = append(blocks, b)
		}
	}
	add("name", d.Name, PlaceholderName, r.TextColor)
	add("title", d.Title, PlaceholderTitle, r.AccentColor)
	add("company", d.Company, PlaceholderCompany, r.TextColor)
	return blocks
}

// backBlocks lists only the contact fields that are filled in. A back side
// with no contact details at all shows placeholders in preview mode.
func backBlocks(d BusinessCardData, r Resolved, opts Options) []Block {
	fields := []struct {
		role, value, placeholder, marker string
	}{
		{"email", d.Email, PlaceholderEmail, MarkerEmail},
		{"phone", d.Phone, PlaceholderPhone, MarkerPhone},
		{"website", d.Website, PlaceholderWebsite, MarkerWebsite},
		{"address", d.Address, PlaceholderAddress, MarkerAddress},
	}

	blocks := []Block{}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b, _ := block(f.role, f.value, f.placeholder, r.TextColor, f.marker, opts.Print)
		blocks = append(blocks, b)
	}
	if len(blocks) > 0 || opts.Print {
		return blocks
	}
	for _, f := range fields {
		b, _ := block(f.role, "", f.placeholder, r.TextColor, f.marker, false)
		blocks = append(blocks, b)
	}
	return blocks
}

func block(role, value, placeholder, color, marker string, printMode bool) (Block, bool) {
	if value != "" {
		return Block{Role: role, Text: value, Color: color, Marker: marker}, true
	}
	if printMode {
		return Block{}, false
	}
	return Block{Role: role, Text: placeholder, Color: color, Marker: marker, Placeholder: true}, true
}

func qrBlock(d BusinessCardData, s Style, opts Options) *QRBlock {
	if !HasQR(d) {
		return nil
	}
	qr := &QRBlock{
		Payload: VCard(d),
		Size:    DefaultQRSize,
		Color:   orDefault(s.QRColor, DefaultQRColor),
		LogoURL: s.QRLogoURL,
		Large:   true,
	}
	if opts.Compact {
		if opts.QRSize < 0 {
			return nil
		}
		qr.Large = false
		qr.Size = DefaultCompactQRSize
		if opts.QRSize > 0 {
			qr.Size = min(opts.QRSize, MaxQRSize)
		}
		return qr
	}
	if opts.QRSize > 0 {
		qr.Size = min(opts.QRSize, MaxQRSize)
	}
	return qr
}
