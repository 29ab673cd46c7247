package leads

import "strings"

// DefaultQualifyingCountry is the birth country that makes an ancestor qualify.
const DefaultQualifyingCountry = "Germany"

// DefaultListConcurrency bounds parallel scoring in ListLeads.
const DefaultListConcurrency = 8

// Policy is the immutable configuration of the lead scorer.
type Policy struct {
	QualifyingCountry string
	ListConcurrency   int
}

func DefaultPolicy() Policy {
	return Policy{
		QualifyingCountry: DefaultQualifyingCountry,
		ListConcurrency:   DefaultListConcurrency,
	}
}

func (p Policy) normalized() Policy {
	p.QualifyingCountry = strings.TrimSpace(p.QualifyingCountry)
	if p.QualifyingCountry == "" {
		p.QualifyingCountry = DefaultQualifyingCountry
	}
	if p.ListConcurrency <= 0 {
		p.ListConcurrency = DefaultListConcurrency
	}
	return p
}
