package domain

// MemberStatus is the membership lifecycle state. Values are the labels stored on the wire.
type MemberStatus string

const (
	StatusPending         MemberStatus = "Pending"
	StatusActivePaying    MemberStatus = "Active: Paying"
	StatusActiveNonPaying MemberStatus = "Active: Non-Paying"
	StatusLifetimeMember  MemberStatus = "Lifetime Member"
	StatusTerminated      MemberStatus = "Terminated"
)

// MemberStatuses lists every status in declaration order
var MemberStatuses = []MemberStatus{
	StatusPending,
	StatusActivePaying,
	StatusActiveNonPaying,
	StatusLifetimeMember,
	StatusTerminated,
}

// IsValid reports whether s is a known status
func (s MemberStatus) IsValid() bool {
	for _, known := range MemberStatuses {
		if s == known {
			return true
		}
	}
	return false
}
