package domain

// Attendance tracks whether a registrant showed up, and why or why not.
// swagger:model Attendance
type Attendance struct {
	Attended *bool  `json:"attended"`
	Note     string `json:"note"`
}

// Attendance statuses derived from Attended.
const (
	AttendanceUnknown  = "unknown"
	AttendanceAttended = "attended"
	AttendanceAbsent   = "absent"
)

// Status is "unknown" until attendance is recorded.
func (a Attendance) Status() string {
	switch {
	case a.Attended == nil:
		return AttendanceUnknown
	case *a.Attended:
		return AttendanceAttended
	default:
		return AttendanceAbsent
	}
}

// Recorded reports whether attendance was taken.
func (a Attendance) Recorded() bool {
	return a.Attended != nil
}
