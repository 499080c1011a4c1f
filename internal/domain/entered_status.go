package domain

// EnteredStatus tracks whether a member was added to a Facebook group
type EnteredStatus string

const (
	EnteredStatusNotEntered EnteredStatus = "Not Entered"
	EnteredStatusEntered    EnteredStatus = "Entered"
	EnteredStatusAccepted   EnteredStatus = "Accepted"
)

// IsValid reports whether s is a known entered status
func (s EnteredStatus) IsValid() bool {
	switch s {
	case EnteredStatusNotEntered, EnteredStatusEntered, EnteredStatusAccepted:
		return true
	}
	return false
}
