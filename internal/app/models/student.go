package models

// Student is one row of the students table
type Student struct {
	ID             int64   `json:"id" example:"1"`
	Name           string  `json:"name" example:"John Doe"`
	Age            int     `json:"age" example:"20"`
	Semester1Grade float64 `json:"semester1_grade" example:"8.5"`
	Semester2Grade float64 `json:"semester2_grade" example:"7.5"`
	TeacherName    string  `json:"teacher_name" example:"Mr. Smith"`
	RoomNumber     string  `json:"room_number" example:"A101"`
}
