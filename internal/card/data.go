package card

import "strings"

// BusinessCardData is what a user types into the card form.
type BusinessCardData struct {
	Name    string `json:"name" bson:"name"`
	Title   string `json:"title" bson:"title"`
	Company string `json:"company" bson:"company"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Website string `json:"website" bson:"website"`
	Address string `json:"address" bson:"address"`
	Logo    string `json:"logo,omitempty" bson:"logo,omitempty"` // image url or data uri
}

// preview placeholders, one per field
const (
	PlaceholderName    = "Your Name"
	PlaceholderTitle   = "Job Title"
	PlaceholderCompany = "Company Name"
	PlaceholderEmail   = "email@example.com"
	PlaceholderPhone   = "+1 (555) 123-4567"
	PlaceholderWebsite = "www.example.com"
	PlaceholderAddress = "123 Business St"
)

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d BusinessCardData) Trimmed() BusinessCardData {
	return BusinessCardData{
		Name:    strings.TrimSpace(d.Name),
		Title:   strings.TrimSpace(d.Title),
		Company: strings.TrimSpace(d.Company),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Website: strings.TrimSpace(d.Website),
		Address: strings.TrimSpace(d.Address),
		Logo:    strings.TrimSpace(d.Logo),
	}
}
