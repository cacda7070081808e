package models

// Student defines the student record model based on the 'students' table.
// Mark fields are pointers: nil means the mark was never recorded and is
// stored as SQL NULL, never as a default numeric value.
type Student struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Subject        string `json:"subject" db:"subject"`
	Email          string `json:"email" db:"email"`
	RollNo         string `json:"rollno" db:"rollno"`
	Phone          string `json:"phone" db:"phone"`
	UnitTest1Marks *int   `json:"unit_test1_marks" db:"unit_test1_marks"`
	UnitTest2Marks *int   `json:"unit_test2_marks" db:"unit_test2_marks"`
	CreatedBy      int64  `json:"created_by" db:"created_by"` // Owning user's ID, set at creation, never reassigned
}
