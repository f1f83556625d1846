// Package mockdata holds the static data sets that stand in for a backend.
// Every accessor returns a fresh copy, so callers may mutate what they get
// without affecting later calls.
package mockdata

import "schoolhub/internal/models"

var courses = []models.Course{
	{
		ID:           "c1",
		Title:        "Advanced Mathematics",
		Price:        49.99,
		Rating:       4.8,
		ReviewCount:  1240,
		GradientFrom: "#6366f1",
		GradientTo:   "#8b5cf6",
		Icon:         "calculator",
		Description:  "Calculus, algebra and problem solving techniques for senior students.",
		Syllabus: []models.SyllabusItem{
			{ID: "c1-1", Title: "Limits and Continuity", Duration: "45 min", IsLocked: false},
			{ID: "c1-2", Title: "Derivatives", Duration: "60 min", IsLocked: false},
			{ID: "c1-3", Title: "Integration Basics", Duration: "55 min", IsLocked: true},
			{ID: "c1-4", Title: "Differential Equations", Duration: "70 min", IsLocked: true},
		},
	},
	{
		ID:           "c2",
		Title:        "Physics Fundamentals",
		Price:        39.99,
		Rating:       4.6,
		ReviewCount:  860,
		GradientFrom: "#0ea5e9",
		GradientTo:   "#22d3ee",
		Icon:         "atom",
		Description:  "Mechanics, energy and waves explained with everyday experiments.",
		Syllabus: []models.SyllabusItem{
			{ID: "c2-1", Title: "Newton's Laws", Duration: "40 min", IsLocked: false},
			{ID: "c2-2", Title: "Work and Energy", Duration: "50 min", IsLocked: true},
			{ID: "c2-3", Title: "Waves and Sound", Duration: "45 min", IsLocked: true},
		},
	},
	{
		ID:           "c3",
		Title:        "Creative Writing",
		Price:        29.99,
		Rating:       4.9,
		ReviewCount:  530,
		GradientFrom: "#f97316",
		GradientTo:   "#facc15",
		Icon:         "pen",
		Description:  "Storytelling, poetry and essay craft with weekly feedback.",
		Syllabus: []models.SyllabusItem{
			{ID: "c3-1", Title: "Finding Your Voice", Duration: "30 min", IsLocked: true},
			{ID: "c3-2", Title: "Building Characters", Duration: "35 min", IsLocked: true},
		},
	},
	{
		ID:           "c4",
		Title:        "Computer Science 101",
		Price:        59.99,
		Rating:       4.7,
		ReviewCount:  2100,
		GradientFrom: "#10b981",
		GradientTo:   "#84cc16",
		Icon:         "code",
		Description:  "Programming basics, algorithms and how computers think.",
		Syllabus: []models.SyllabusItem{
			{ID: "c4-1", Title: "Variables and Types", Duration: "40 min", IsLocked: false},
			{ID: "c4-2", Title: "Control Flow", Duration: "45 min", IsLocked: false},
			{ID: "c4-3", Title: "Functions", Duration: "50 min", IsLocked: true},
			{ID: "c4-4", Title: "Sorting Algorithms", Duration: "60 min", IsLocked: true},
		},
	},
}

var fees = []models.FeeInvoice{
	{ID: "f1", Month: "January", Amount: 450, Status: models.FeePaid, DueDate: "2024-01-10"},
	{ID: "f2", Month: "February", Amount: 450, Status: models.FeePaid, DueDate: "2024-02-10"},
	{ID: "f3", Month: "March", Amount: 450, Status: models.FeeOverdue, DueDate: "2024-03-10"},
	{ID: "f4", Month: "April", Amount: 475, Status: models.FeePending, DueDate: "2024-04-10"},
}

var attendance = []models.AttendanceRecord{
	{ID: "s1", Name: "Aarav Sharma", RollNumber: "101", Status: models.AttendancePresent, BehaviorPoints: 12},
	{ID: "s2", Name: "Maya Patel", RollNumber: "102", Status: models.AttendancePresent, BehaviorPoints: 9},
	{ID: "s3", Name: "Liam Chen", RollNumber: "103", Status: models.AttendanceAbsent, BehaviorPoints: 4},
	{ID: "s4", Name: "Sofia Garcia", RollNumber: "104", Status: models.AttendanceLate, BehaviorPoints: 7},
	{ID: "s5", Name: "Noah Williams", RollNumber: "105", Status: models.AttendancePresent, BehaviorPoints: 11},
}

var salaries = []models.SalaryRecord{
	{ID: "p1", Month: "January", Amount: 3200, Status: "Paid", PaidOn: "2024-01-31"},
	{ID: "p2", Month: "February", Amount: 3200, Status: "Paid", PaidOn: "2024-02-29"},
	{ID: "p3", Month: "March", Amount: 3350, Status: "Processing"},
}

var users = []models.SystemUser{
	{
		ID:          "u1",
		Name:        "Emma Johnson",
		Email:       "emma.johnson@school.edu",
		Role:        models.RoleStudent,
		Permissions: []models.Permission{models.PermViewDashboard},
	},
	{
		ID:    "u2",
		Name:  "Robert Brown",
		Email: "robert.brown@school.edu",
		Role:  models.RoleTeacher,
		Permissions: []models.Permission{
			models.PermViewDashboard,
			models.PermMarkAttendance,
			models.PermManageExams,
		},
	},
	{
		ID:    "u3",
		Name:  "Priya Nair",
		Email: "priya.nair@school.edu",
		Role:  models.RoleAdmin,
		Permissions: []models.Permission{
			models.PermViewDashboard,
			models.PermManageFees,
			models.PermManageUsers,
			models.PermViewReports,
		},
	},
	{
		ID:    "u4",
		Name:  "Daniel Kim",
		Email: "daniel.kim@school.edu",
		Role:  models.RoleTeacher,
		Permissions: []models.Permission{
			models.PermViewDashboard,
			models.PermMarkAttendance,
			models.PermMessageParents,
		},
	},
}

// Courses returns the course catalogue in display order
func Courses() []models.Course {
	out := make([]models.Course, len(courses))
	for i, c := range courses {
		out[i] = c.Clone()
	}
	return out
}

// CourseByID looks up a catalogue entry
func CourseByID(id string) (models.Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Course{}, false
}

// Fees returns the student's invoices
func Fees() []models.FeeInvoice {
	return append([]models.FeeInvoice(nil), fees...)
}

// Attendance returns the teacher's class roster
func Attendance() []models.AttendanceRecord {
	return append([]models.AttendanceRecord(nil), attendance...)
}

// Salaries returns the teacher's salary history
func Salaries() []models.SalaryRecord {
	return append([]models.SalaryRecord(nil), salaries...)
}

// Users returns the default system users shown on the admin dashboard
func Users() []models.SystemUser {
	out := make([]models.SystemUser, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
