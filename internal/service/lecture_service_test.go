package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

func TestLectureCreateSanitizesAndStampsAuthor(t *testing.T) {
	repo := &memoryLectureRepo{}
	publisher := &memoryPublisher{}
	svc := service.NewLectureService(repo, publisher, zerolog.New(io.Discard))

	lecture, err := svc.Create(context.Background(), dto.LectureCreateRequest{
		VideoName:   "<i>Kinematics</i> Basics",
		VideoURL:    "https://videos.example.com/kinematics.mp4",
		Description: "Covers <b>velocity</b> and <script>alert(1)</script>acceleration.",
		TargetType:  models.TargetTypeSubject,
		TargetValue: []string{"Physics", " "},
	}, "ADMIN01")
	require.NoError(t, err)

	require.Equal(t, "Kinematics Basics", lecture.VideoName)
	require.Contains(t, lecture.Description, "<b>velocity</b>")
	require.NotContains(t, lecture.Description, "script")
	require.Equal(t, []string{"Physics"}, lecture.TargetValue)
	require.Equal(t, "ADMIN01", repo.lectures[0].CreatedBy)

	require.Len(t, publisher.events, 1)
	require.Equal(t, "lecture.published", publisher.events[0].action)
}

func TestLectureCreateValidatesPayload(t *testing.T) {
	svc := service.NewLectureService(&memoryLectureRepo{}, &memoryPublisher{}, zerolog.New(io.Discard))

	_, err := svc.Create(context.Background(), dto.LectureCreateRequest{
		VideoName:  "Kinematics",
		VideoURL:   "not-a-url",
		TargetType: models.TargetTypeSubject,
	}, "ADMIN01")
	require.Error(t, err)

	_, err = svc.Create(context.Background(), dto.LectureCreateRequest{
		VideoName:   "Kinematics",
		VideoURL:    "https://videos.example.com/kinematics.mp4",
		TargetType:  "everyone",
		TargetValue: []string{"batch-a"},
	}, "ADMIN01")
	require.Error(t, err)
}
