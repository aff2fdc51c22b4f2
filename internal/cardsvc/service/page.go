package service

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/avvvet/cardcraft-services/internal/card"
)

// printed card size in CSS pixels (3.5in x 2in at 200dpi)
const (
	CardWidth   = 700
	CardHeight  = 400
	ExportScale = 2
)

var (
	cssColorRe = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\([0-9.,%\s]+\))$`)
	cssFontRe  = regexp.MustCompile(`^[a-zA-Z0-9 ,'"\-]{1,120}$`)
)

var pageTmpl = template.Must(template.New("card").Funcs(template.FuncMap{"markerGlyph": markerGlyph}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; background: transparent; }
  #card {
    position: relative; overflow: hidden; box-sizing: border-box;
    width: {{.Width}}px; height: {{.Height}}px; padding: 40px;
    display: flex; flex-direction: column; justify-content: center;
    font-family: {{.Font}}; font-size: {{.FontSize}}px; color: {{.TextColor}};
    font-weight: {{.FontWeight}};
    border-radius: {{.Radius}}px;
    background: {{.Background}};
  }
  #card .bg { position: absolute; inset: 0; width: 100%; height: 100%; object-fit: cover; z-index: 0; }
  #card .content { position: relative; z-index: 1; }
  #card .name { font-size: 1.75em; font-weight: 700; margin: 0 0 6px; }
  #card .title { color: {{.AccentColor}}; margin: 0 0 4px; }
  #card .company { opacity: .8; margin: 0; }
  #card .logo { max-height: 64px; max-width: 160px; margin-bottom: 16px; }
  #card .row { margin: 4px 0; }
  #card .marker { color: {{.AccentColor}}; display: inline-block; min-width: 1.5em; }
  #card .qr { position: absolute; right: 40px; bottom: 40px; z-index: 1; }
</style>
</head>
<body>
<div id="card">
  {{if .BackgroundImage}}<img class="bg" src="{{.BackgroundImage}}" alt="">{{end}}
  <div class="content">
    {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="">{{end}}
    {{range .Blocks}}
      {{if eq .Role "name"}}<h1 class="name">{{.Text}}</h1>
      {{else if eq .Role "title"}}<p class="title">{{.Text}}</p>
      {{else if eq .Role "company"}}<p class="company">{{.Text}}</p>
      {{else}}<p class="row"><span class="marker">{{markerGlyph .Marker}}</span>{{.Text}}</p>{{end}}
    {{end}}
  </div>
  {{if .QR}}<img class="qr" src="{{.QR}}" width="{{.QRSize}}" height="{{.QRSize}}" alt="">{{end}}
</div>
</body>
</html>`))

type pageData struct {
	Width, Height   int
	Font            template.CSS
	FontSize        int
	FontWeight      template.CSS
	TextColor       template.CSS
	AccentColor     template.CSS
	Radius          int
	Background      template.CSS
	BackgroundImage template.URL
	Logo            template.URL
	Blocks          []card.Block
	QR              template.URL
	QRSize          int
}

// PageHTML renders a layout to a standalone HTML page with a single #card
// element. Screen-only elements (the premium badge) are never drawn.
func PageHTML(l card.Layout) (string, error) {
	d := pageData{
		Width:       CardWidth,
		Height:      CardHeight,
		Font:        template.CSS(safeFont(l.Font)),
		FontSize:    l.FontSize,
		FontWeight:  template.CSS(fontWeightCSS(l.FontWeight)),
		TextColor:   template.CSS(safeColor(l.TextColor, card.DefaultDesignFontColor)),
		AccentColor: template.CSS(safeColor(l.AccentColor, card.DefaultDesignAccentColor)),
		Blocks:      l.Blocks,
		Logo:        safeURL(l.Logo),
	}
	if l.BorderStyle != "none" && l.BorderStyle != "sharp" {
		d.Radius = 16
	}

	switch l.Background.Kind {
	case card.BackgroundKindImage:
		d.BackgroundImage = safeURL(l.Background.URL)
		d.Background = template.CSS(card.ManagedFallbackColor)
	case card.BackgroundKindGradient:
		d.Background = template.CSS(fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", l.Background.Angle,
			safeColor(l.Background.Colors[0], card.ManagedFallbackColor),
			safeColor(l.Background.Colors[1], card.ManagedFallbackColor)))
	default:
		c := card.ManagedFallbackColor
		if len(l.Background.Colors) > 0 {
			c = l.Background.Colors[0]
		}
		d.Background = template.CSS(safeColor(c, card.ManagedFallbackColor))
	}

	if l.QR != nil {
		uri, err := QRDataURI(l.QR, ExportScale)
		if err != nil {
			return "", err
		}
		d.QR = template.URL(uri)
		d.QRSize = l.QR.Size
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render card page: %w", err)
	}
	return buf.String(), nil
}

func markerGlyph(m string) string {
	switch m {
	case card.MarkerEmail:
		return "✉"
	case card.MarkerPhone:
		return "☎"
	case card.MarkerWebsite:
		return "◎"
	case card.MarkerAddress:
		return "⌖"
	}
	return ""
}

func safeColor(c, def string) string {
	if cssColorRe.MatchString(strings.TrimSpace(c)) {
		return strings.TrimSpace(c)
	}
	return def
}

func safeFont(f string) string {
	if cssFontRe.MatchString(f) {
		return f
	}
	return card.DefaultFont
}

func fontWeightCSS(w string) string {
	switch w {
	case "light":
		return "300"
	case "bold":
		return "700"
	case "black":
		return "900"
	}
	return "400"
}

// safeURL passes http(s) and inline image URLs; anything else is dropped.
func safeURL(u string) template.URL {
	u = strings.TrimSpace(u)
	switch {
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "data:image/"):
		return template.URL(u)
	}
	return ""
}
