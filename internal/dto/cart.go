package dto

type AddToCartRequest struct {
	CourseID string `json:"courseId"`
}

type RemoveFromCartRequest struct {
	CourseID string `json:"courseId"`
}

type CartItemResponse struct {
	CourseID  string         `json:"courseId"`
	Course    CourseResponse `json:"course"`
	CreatedAt string         `json:"createdAt"`
}
