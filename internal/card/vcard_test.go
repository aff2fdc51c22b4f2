package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func janeDoe() BusinessCardData {
	return BusinessCardData{
		Name:    "Jane Doe",
		Title:   "CTO",
		Company: "Acme",
		Email:   "jane@acme.com",
		Phone:   "+1-555-0100",
		Website: "acme.com",
		Address: "1 Main St",
	}
}

func TestVCard_ExactPayload(t *testing.T) {
	want := "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nTITLE:CTO\nORG:Acme\nEMAIL:jane@acme.com\nTEL:+1-555-0100\nURL:acme.com\nADR:1 Main St\nEND:VCARD"
	assert.Equal(t, want, VCard(janeDoe()))
}

func TestVCard_NoEscaping(t *testing.T) {
	d := janeDoe()
	d.Address = "1 Main St, Suite 2; Springfield"

	assert.Contains(t, VCard(d), "\nADR:1 Main St, Suite 2; Springfield\n")
}

func TestVCard_EmptyFieldsKeepTags(t *testing.T) {
	want := "BEGIN:VCARD\nVERSION:3.0\nFN:\nTITLE:\nORG:\nEMAIL:\nTEL:\nURL:\nADR:\nEND:VCARD"
	assert.Equal(t, want, VCard(BusinessCardData{}))
}

func TestHasQR(t *testing.T) {
	tests := []struct {
		name  string
		data  BusinessCardData
		wants bool
	}{
		{"both", BusinessCardData{Name: "Jane", Email: "j@a.com"}, true},
		{"no email", BusinessCardData{Name: "Jane"}, false},
		{"no name", BusinessCardData{Email: "j@a.com"}, false},
		{"neither", BusinessCardData{Phone: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, HasQR(tt.data))
		})
	}
}
