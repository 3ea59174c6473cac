package entity

// ApprenticeData holds the step-8 apprenticeship fields.
type ApprenticeData struct {
	IsApprentice  bool   `json:"isApprentice"`
	Institution   string `json:"institution"`
	CourseName    string `json:"courseName"`
	CourseEndDate string `json:"courseEndDate"`
}

func (ApprenticeData) Key() StepKey { return KeyApprentice }
