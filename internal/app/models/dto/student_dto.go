package dto

// StudentRequest carries the fields for creating or fully overwriting a
// student record. Mark fields tolerate numbers, numeric strings and null.
type StudentRequest struct {
	Name           string `json:"name"`
	Subject        string `json:"subject"`
	Email          string `json:"email"`
	RollNo         string `json:"rollno"`
	Phone          string `json:"phone"`
	UnitTest1Marks Mark   `json:"unit_test1_marks"`
	UnitTest2Marks Mark   `json:"unit_test2_marks"`
}

// StatsResponse aggregates record counts. Total students is scoped by the
// caller's role; admin and user counts are always global.
type StatsResponse struct {
	TotalStudents int64 `json:"total_students"`
	TotalAdmins   int64 `json:"total_admins"`
	TotalUsers    int64 `json:"total_users"`
}
