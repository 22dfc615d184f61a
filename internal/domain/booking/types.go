package booking

type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}
