package service_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

type memoryStorage struct {
	lastExt  string
	lastData []byte
	url      string
}

func (m *memoryStorage) Save(_ context.Context, ext string, data []byte) (string, error) {
	m.lastExt = ext
	m.lastData = data
	return m.url, nil
}

type noopDashboard struct {
	invalidated []string
}

func (n *noopDashboard) ForStudent(_ context.Context, _ string) (dto.DashboardResponse, error) {
	return dto.DashboardResponse{}, nil
}

func (n *noopDashboard) Invalidate(_ context.Context, uid string) {
	n.invalidated = append(n.invalidated, uid)
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(int64(len(content)) + 4096)
	require.NoError(t, err)
	return form.File["image"][0]
}

func newTestUploadService(t *testing.T, store *memoryStorage, maxBytes int64) (service.UploadService, *memoryStudentRepo, *noopDashboard) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	repo := &memoryStudentRepo{}
	students := service.NewStudentService(repo, &memoryPublisher{}, logger)

	_, err := students.Create(context.Background(), dto.StudentCreateRequest{
		Name: "Priya", UID: "MB2024001", Password: "secret99", Subjects: []string{"Physics"},
	})
	require.NoError(t, err)

	dashboard := &noopDashboard{}
	return service.NewUploadService(store, students, dashboard, maxBytes, logger), repo, dashboard
}

func TestStoreProfileImageAcceptsPNG(t *testing.T) {
	store := &memoryStorage{url: "/uploads/images/abc.png"}
	svc, repo, dashboard := newTestUploadService(t, store, 1<<20)

	url, err := svc.StoreProfileImage(context.Background(), "MB2024001", multipartFile(t, "avatar.png", pngBytes))
	require.NoError(t, err)
	require.Equal(t, "/uploads/images/abc.png", url)
	require.Equal(t, ".png", store.lastExt)
	require.Equal(t, pngBytes, store.lastData)

	require.Equal(t, url, repo.students[0].ProfilePicture)
	require.Equal(t, []string{"MB2024001"}, dashboard.invalidated)
}

func TestStoreProfileImageRejectsNonImages(t *testing.T) {
	store := &memoryStorage{}
	svc, repo, _ := newTestUploadService(t, store, 1<<20)

	_, err := svc.StoreProfileImage(context.Background(), "MB2024001", multipartFile(t, "notes.txt", []byte("plain text, not an image")))
	require.ErrorIs(t, err, service.ErrUnsupportedImage)
	require.Empty(t, repo.students[0].ProfilePicture)
}

func TestStoreProfileImageEnforcesSizeCap(t *testing.T) {
	store := &memoryStorage{}
	svc, _, _ := newTestUploadService(t, store, 8)

	_, err := svc.StoreProfileImage(context.Background(), "MB2024001", multipartFile(t, "avatar.png", pngBytes))
	require.ErrorIs(t, err, service.ErrFileTooLarge)
}
