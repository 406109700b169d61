package model

type GetCoursesRequest struct {
	Difficulty string `json:"difficulty"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

type GetCoursesResponse struct {
	Courses []Course `json:"courses"`
}

type GetCourseRequest struct {
	ID string `json:"id"`
}

type GetCourseResponse struct {
	Course Course `json:"course"`
}

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
	Lessons     int    `json:"lessons"`
}

type CreateCourseResponse struct {
	Course Course `json:"course"`
}

type UpdateCourseRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration"`
	Lessons     int    `json:"lessons"`
}

type UpdateCourseResponse struct{}

type DeleteCourseRequest struct {
	ID string `json:"id"`
}

type DeleteCourseResponse struct{}

type GetQuizzesRequest struct {
	Difficulty string `json:"difficulty"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

type GetQuizzesResponse struct {
	Quizzes []Quiz `json:"quizzes"`
}

type GetQuizRequest struct {
	ID string `json:"id"`
}

type GetQuizResponse struct {
	Quiz Quiz `json:"quiz"`
}

type CreateQuizRequest struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Questions  int    `json:"questions"`
}

type CreateQuizResponse struct {
	Quiz Quiz `json:"quiz"`
}

type UpdateQuizRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Questions  int    `json:"questions"`
}

type UpdateQuizResponse struct{}

type DeleteQuizRequest struct {
	ID string `json:"id"`
}

type DeleteQuizResponse struct{}

type GetGuidesRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

type GetGuidesResponse struct {
	Guides []Guide `json:"guides"`
}

type GetGuideRequest struct {
	ID string `json:"id"`
}

type GetGuideResponse struct {
	Guide Guide `json:"guide"`
}

type CreateGuideRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type CreateGuideResponse struct {
	Guide Guide `json:"guide"`
}

type SubmitQuizScoreRequest struct {
	QuizID         string `json:"quiz_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

type SubmitQuizScoreResponse struct {
	QuizScore    QuizScore `json:"quiz_score"`
	PointsEarned uint64    `json:"points_earned"`
	Percentage   int       `json:"percentage"`
}
