package uploads

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	path string
	err  error
}

func (f *fakeStore) Upload(path string, file *multipart.FileHeader) (string, error) {
	f.path = path
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + path, nil
}

func multipartBody(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("file content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadReturnsURLWithObjectName(t *testing.T) {
	store := &fakeStore{}
	app := fiber.New()
	app.Post("/upload", NewHandler(store).Upload)

	body, contentType := multipartBody(t, "thumbnail.png")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The object name is a fresh UUID with the original extension.
	require.True(t, strings.HasSuffix(store.path, ".png"))
	_, err = uuid.Parse(strings.TrimSuffix(store.path, ".png"))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Contains(t, envelope.Data.URL, store.path, "returned URL must contain the generated object name")
}

func TestUploadWithoutFileIsRejected(t *testing.T) {
	store := &fakeStore{}
	app := fiber.New()
	app.Post("/upload", NewHandler(store).Upload)

	resp, err := app.Test(httptest.NewRequest("POST", "/upload", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, store.path, "storage must not be called without a file")
}

func TestUploadStorageFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket unavailable")}
	app := fiber.New()
	app.Post("/upload", NewHandler(store).Upload)

	body, contentType := multipartBody(t, "thumbnail.png")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
