package guard

import "fmt"

// Status is the position of one guard evaluation.
type Status int

const (
	StatusInit Status = iota
	StatusLocalCheck
	StatusVerifying
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusLocalCheck:
		return "localCheck"
	case StatusVerifying:
		return "verifying"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether s ends an evaluation.
func (s Status) Terminal() bool {
	return s == StatusAuthenticated || s == StatusUnauthenticated
}
