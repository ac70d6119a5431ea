package casegraph

import (
	"github.com/Lakshya5071/criminal-record-service/internal/database"
)

// Date fields reach this package as ISO strings that validation has already
// checked, so parse failures here reduce to zero dates and cannot occur on
// the synchronizer paths.

func docDate(s string) database.Date {
	d, _ := database.ParseDate(s)
	return d
}

func docDatePtr(s *string) *database.Date {
	if s == nil {
		return nil
	}
	d := docDate(*s)
	return &d
}

func dateString(d *database.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func personToDoc(p *database.Person) *PersonDoc {
	return &PersonDoc{
		ID:            p.ID,
		PersonName:    p.PersonName,
		AadhaarNumber: p.AadhaarNumber,
		PhoneNumber:   p.PhoneNumber,
		PersonAddress: p.PersonAddress,
		PersonGender:  p.PersonGender,
		PersonDOB:     p.PersonDOB.String(),
	}
}

func documentToDoc(d *database.Document) *DocumentDoc {
	return &DocumentDoc{
		ID:                 d.ID,
		DocumentName:       d.DocumentName,
		DocumentType:       d.DocumentType,
		DocumentDate:       d.DocumentDate.String(),
		DocumentContentURL: d.DocumentContentURL,
	}
}

func authorityToDoc(a *database.Authority) *AuthorityDoc {
	return &AuthorityDoc{
		ID:            a.ID,
		GlobalID:      a.GlobalID,
		AuthorityName: a.AuthorityName,
		AuthorityType: a.AuthorityType,
	}
}
