package model

import "fmt"

const (
	UsersTable    = "Users"
	CoursesTable  = "Courses"
	CartsTable    = "Carts"
	RoomsTable    = "Rooms"
	MessagesTable = "Messages"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type UserItem struct {
	UserID       string `dynamodbav:"userId"`
	Username     string `dynamodbav:"username"`
	Email        string `dynamodbav:"email"`
	Role         string `dynamodbav:"role"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

type ReviewItem struct {
	StudentID string  `dynamodbav:"studentId"`
	Rating    float64 `dynamodbav:"rating"`
	Comment   string  `dynamodbav:"comment,omitempty"`
	CreatedAt string  `dynamodbav:"createdAt"`
}

type CourseItem struct {
	CourseID    string       `dynamodbav:"courseId"`
	Title       string       `dynamodbav:"title"`
	Description string       `dynamodbav:"description"`
	TeacherID   string       `dynamodbav:"teacherId"`
	Price       float64      `dynamodbav:"price"`
	Category    string       `dynamodbav:"category"`
	Rating      float64      `dynamodbav:"rating"`
	Reviews     []ReviewItem `dynamodbav:"reviews,omitempty"`
	Videos      []string     `dynamodbav:"videos,omitempty"`
	CreatedAt   string       `dynamodbav:"createdAt"`
}

type CartItem struct {
	PK        string `dynamodbav:"pk"`
	UserID    string `dynamodbav:"userId"`
	CourseID  string `dynamodbav:"courseId"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func CartPK(userID, courseID string) string {
	return fmt.Sprintf("%s#%s", userID, courseID)
}
