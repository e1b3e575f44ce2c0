package models

import "strings"

// KeyPerson is one leadership contact found during enrichment.
type KeyPerson struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact,omitempty"`
}

// CardRecord is the loosely-shaped record extracted from a photographed
// business card. It is produced by the recognition backend or supplied
// directly by the caller; every field is optional and unknown fields in
// the incoming JSON are ignored.
type CardRecord struct {
	// Card data.
	Company  string `json:"company,omitempty"`
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Location string `json:"location,omitempty"`

	// Enriched data (web research).
	Industry           string      `json:"industry,omitempty"`
	Website            string      `json:"website,omitempty"`
	SocialMedia        string      `json:"social_media,omitempty"`
	Services           string      `json:"services,omitempty"`
	CompanySize        string      `json:"company_size,omitempty"`
	FoundedYear        string      `json:"founded_year,omitempty"`
	RegistrationStatus string      `json:"registration_status,omitempty"`
	TrustScore         string      `json:"trust_score,omitempty"`
	KeyPeople          []KeyPerson `json:"key_people,omitempty"`
	KeyPeopleStr       string      `json:"key_people_str,omitempty"`

	// Meta data. IsValidated arrives as a JSON bool or string and is
	// persisted verbatim, so it stays untyped here.
	ValidationSource string `json:"validation_source,omitempty"`
	IsValidated      any    `json:"is_validated,omitempty"`
	AboutTheCompany  string `json:"about_the_company,omitempty"`

	// Legacy discrete leadership fields, kept for records produced
	// before key_people existed.
	Founder string `json:"founder,omitempty"`
	CEO     string `json:"ceo,omitempty"`
	Owner   string `json:"owner,omitempty"`
}

// Validated reports whether the record's validation flag is set. Only a
// boolean true or the string "true" (case-insensitive) count; anything
// else, including absence, is treated as unset.
func (r CardRecord) Validated() bool {
	switch v := r.IsValidated.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}
