package dto

// DashboardResponse aggregates everything the student dashboard renders: the
// courses matching the student's enrolled subjects, the lectures targeted at
// those subjects grouped per subject, and the lectures targeted at the
// student's group.
type DashboardResponse struct {
	Student            StudentResponse              `json:"student"`
	MatchedCourses     []CourseResponse             `json:"matchedCourses"`
	LecturesBySubject  map[string][]LectureResponse `json:"lecturesBySubject"`
	GroupLectures      []LectureResponse            `json:"groupLectures"`
	TotalMatchedVideos int                          `json:"totalMatchedVideos"`
}

// UploadResponse is returned after a successful profile image upload.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
