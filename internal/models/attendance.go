package models

// AttendanceStatus is the daily mark of a student
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
)

// Valid reports whether s is a known status
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Next cycles Present -> Absent -> Late -> Present
func (s AttendanceStatus) Next() AttendanceStatus {
	switch s {
	case AttendancePresent:
		return AttendanceAbsent
	case AttendanceAbsent:
		return AttendanceLate
	default:
		return AttendancePresent
	}
}

// AttendanceRecord is one row of a teacher's class roster
type AttendanceRecord struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	RollNumber     string           `json:"roll_number"`
	Status         AttendanceStatus `json:"status"`
	BehaviorPoints int              `json:"behavior_points"`
}

// AttendanceSummary counts a roster by status
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Total   int `json:"total"`
}

// Summarize counts the roster by status
func Summarize(records []AttendanceRecord) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range records {
		switch r.Status {
		case AttendancePresent:
			s.Present++
		case AttendanceAbsent:
			s.Absent++
		case AttendanceLate:
			s.Late++
		}
	}
	s.Total = len(records)
	return s
}
