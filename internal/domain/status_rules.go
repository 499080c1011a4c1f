package domain

import "time"

// DateField names a status-derived date on a user record
type DateField string

const (
	FieldJoinedDate     DateField = "joinedDate"
	FieldRenewalDate    DateField = "renewalDate"
	FieldTerminatedDate DateField = "terminatedDate"
)

// StatusRule lists which status-derived dates must be present and which are cleared
type StatusRule struct {
	Required []DateField
	Cleared  []DateField
}

// RulesFor returns the date requirements for a membership status.
// Every status names all three dates in exactly one of the two lists.
func RulesFor(status MemberStatus) StatusRule {
	switch status {
	case StatusActivePaying:
		return StatusRule{
			Required: []DateField{FieldJoinedDate, FieldRenewalDate},
			Cleared:  []DateField{FieldTerminatedDate},
		}
	case StatusActiveNonPaying, StatusLifetimeMember:
		return StatusRule{
			Required: []DateField{FieldJoinedDate},
			Cleared:  []DateField{FieldRenewalDate, FieldTerminatedDate},
		}
	case StatusTerminated:
		return StatusRule{
			Required: []DateField{FieldJoinedDate, FieldTerminatedDate},
			Cleared:  []DateField{FieldRenewalDate},
		}
	default:
		return StatusRule{
			Cleared: []DateField{FieldJoinedDate, FieldRenewalDate, FieldTerminatedDate},
		}
	}
}

func (u *User) dateField(f DateField) **time.Time {
	switch f {
	case FieldJoinedDate:
		return &u.JoinedDate
	case FieldRenewalDate:
		return &u.RenewalDate
	default:
		return &u.TerminatedDate
	}
}

func (u *User) applyStatusRule() error {
	rule := RulesFor(u.Status)
	for _, f := range rule.Required {
		if *u.dateField(f) == nil {
			return invalid(string(f), "is required when status is "+string(u.Status))
		}
	}
	for _, f := range rule.Cleared {
		*u.dateField(f) = nil
	}
	return nil
}
