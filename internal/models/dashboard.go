package models

// TeacherDashboardStats is the summary block of the teacher dashboard.
type TeacherDashboardStats struct {
	TotalStudents      int      `json:"totalStudents"`
	TotalClasses       int      `json:"totalClasses"`
	UpcomingClasses    int      `json:"upcomingClasses"`
	AssignmentsPending int      `json:"assignmentsPending"`
	AttendanceRate     float64  `json:"attendanceRate"`
	AverageGrade       *float64 `json:"averageGrade,omitempty"`
}

// TeacherClass is one class assignment of a teacher.
type TeacherClass struct {
	ClassID       int64  `json:"classId"`
	ClassName     string `json:"className"`
	Subject       string `json:"subject"`
	IsMainTeacher bool   `json:"isMainTeacher"`
	StudentCount  int    `json:"studentCount"`
}

// UpcomingClass is one entry of a teacher's schedule.
type UpcomingClass struct {
	ID           int64  `json:"id"`
	ClassName    string `json:"className"`
	Subject      string `json:"subject"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Room         string `json:"room"`
	StudentCount int    `json:"studentCount"`
}

// TeacherActivity is one entry of a teacher's recent-activity feed.
type TeacherActivity struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	ClassID     *int64 `json:"classId,omitempty"`
}

// ParentDashboardStats is the summary block of the parent dashboard.
type ParentDashboardStats struct {
	TotalChildren         int     `json:"totalChildren"`
	UnreadNotifications   int     `json:"unreadNotifications"`
	PendingPayments       int     `json:"pendingPayments"`
	OverallAttendanceRate float64 `json:"overallAttendanceRate"`
	UpcomingEvents        int     `json:"upcomingEvents"`
}

// Child is a summary of one of a parent's children.
type Child struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Grade          string  `json:"grade"`
	ClassName      string  `json:"className"`
	SchoolName     string  `json:"schoolName"`
	AttendanceRate float64 `json:"attendanceRate"`
	AverageGrade   string  `json:"averageGrade,omitempty"`
	TeacherName    string  `json:"teacherName"`
	ProfileImage   string  `json:"profileImage,omitempty"`
}

// ChildDetail extends Child with the fields of the child detail screen.
type ChildDetail struct {
	Child
	BirthDate        string `json:"birthDate,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	MedicalNotes     string `json:"medicalNotes,omitempty"`
	EnrollmentDate   string `json:"enrollmentDate"`
}
