package dto

type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	VideoURL    string  `json:"videoUrl,omitempty"`
}

type UpdateCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category"`
}

type ReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

type ReviewResponse struct {
	StudentID string  `json:"studentId"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}

type CourseResponse struct {
	CourseID    string           `json:"courseId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TeacherID   string           `json:"teacherId"`
	Price       float64          `json:"price"`
	Category    string           `json:"category"`
	Rating      float64          `json:"rating"`
	Reviews     []ReviewResponse `json:"reviews"`
	Videos      []string         `json:"videos"`
	CreatedAt   string           `json:"createdAt"`
}

type UploadVideoResponse struct {
	VideoPath string `json:"videoPath"`
}
