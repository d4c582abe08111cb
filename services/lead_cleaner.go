package services

import (
	"datacleaners/models"
	"datacleaners/utils"
)

// LeadSourceColumns maps the scraping tool's column ids to lead fields.
// These names appear nowhere else in the code.
var LeadSourceColumns = struct {
	BusinessName string
	Phone        string
	WebsiteLink  string
}{
	BusinessName: "qBF1Pd",
	Phone:        "UsdlK",
	WebsiteLink:  "lcr4fd href",
}

// RequiredLeadColumns lists the source columns a lead export must have.
func RequiredLeadColumns() []string {
	return []string{LeadSourceColumns.BusinessName, LeadSourceColumns.Phone, LeadSourceColumns.WebsiteLink}
}

// LeadCleaner turns a scraped listing export into contactable leads.
type LeadCleaner struct {
	logger *utils.Logger
}

// NewLeadCleaner creates a LeadCleaner with the given logger.
func NewLeadCleaner(logger *utils.Logger) *LeadCleaner {
	return &LeadCleaner{logger: logger}
}

// Clean keeps rows that have a business name and at least one of phone or
// website, and tags each with city. An export missing any source column is
// rejected whole with a *SchemaError.
func (c *LeadCleaner) Clean(table *models.Table, city string) ([]*models.Lead, error) {
	required := RequiredLeadColumns()
	if missing := table.Missing(required...); len(missing) > 0 {
		return nil, &SchemaError{File: table.Name, Missing: missing, Required: required}
	}

	raw := ReadRawLeads(table)
	result := make([]*models.Lead, 0, len(raw))
	var noContact, noName int

	for _, r := range raw {
		if IsNull(r.Phone) && IsNull(r.WebsiteLink) {
			noContact++
			continue
		}
		if IsNull(r.BusinessName) {
			noName++
			continue
		}

		lead := &models.Lead{
			BusinessName: r.BusinessName,
			Phone:        r.Phone,
			WebsiteLink:  r.WebsiteLink,
			City:         city,
		}
		if IsNull(lead.Phone) {
			lead.Phone = ""
		}
		if IsNull(lead.WebsiteLink) {
			lead.WebsiteLink = models.NilWebsite
		}
		result = append(result, lead)
	}

	c.logger.Info("[leads] Cleaned %d → %d leads for %q (no contact: %d, no name: %d)",
		len(raw), len(result), city, noContact, noName)
	return result, nil
}

// ReadRawLeads projects table rows onto the three source columns.
func ReadRawLeads(table *models.Table) []*models.RawLead {
	nameIdx := table.Index(LeadSourceColumns.BusinessName)
	phoneIdx := table.Index(LeadSourceColumns.Phone)
	siteIdx := table.Index(LeadSourceColumns.WebsiteLink)

	out := make([]*models.RawLead, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, &models.RawLead{
			BusinessName: models.Cell(row, nameIdx),
			Phone:        models.Cell(row, phoneIdx),
			WebsiteLink:  models.Cell(row, siteIdx),
		})
	}
	return out
}

// LeadsFileName is the download name for a city's cleaned leads.
func LeadsFileName(city string) string {
	return "Cleaned_" + city + "_Leads.csv"
}
