package models

// NilWebsite is written in place of an absent website link.
const NilWebsite = "NIL"

// LeadHeader is the header row of a cleaned lead export.
var LeadHeader = []string{"BUSINESS NAME", "PHONE", "WEBSITE LINK", "CITY"}

// RawLead holds the three contact fields read from a scraped listing export.
// An empty string means the cell was absent.
type RawLead struct {
	BusinessName string
	Phone        string
	WebsiteLink  string
}

// Lead is a contactable business ready for export.
type Lead struct {
	BusinessName string
	Phone        string
	WebsiteLink  string
	City         string
}

// Record returns the lead in LeadHeader column order.
func (l *Lead) Record() []string {
	return []string{l.BusinessName, l.Phone, l.WebsiteLink, l.City}
}
