package dto

// DashboardResponse summarises the classroom
// @Description Dashboard statistics
type DashboardResponse struct {
	QuizCount       int `json:"quizCount"`
	StudentCount    int `json:"studentCount"`
	ModuleCount     int `json:"moduleCount"`
	AverageProgress int `json:"averageProgress"`
}
