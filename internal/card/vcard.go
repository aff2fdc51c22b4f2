package card

import "strings"

// VCard serializes data into the vCard 3.0 block embedded in the QR code.
// Field order and tags are fixed; scanning apps depend on them.
// Values are written as-is: commas and semicolons are not escaped.
func VCard(d BusinessCardData) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + d.Name,
		"TITLE:" + d.Title,
		"ORG:" + d.Company,
		"EMAIL:" + d.Email,
		"TEL:" + d.Phone,
		"URL:" + d.Website,
		"ADR:" + d.Address,
		"END:VCARD",
	}
	return strings.Join(lines, "\n")
}

// HasQR reports whether a QR block may be shown for d.
func HasQR(d BusinessCardData) bool {
	return d.Name != "" && d.Email != ""
}
