package utils

import (
	"io"
	"mime/multipart"
	"net/http"

	storage_go "github.com/supabase-community/storage-go"
)

// Store binds the storage client to a bucket.
type Store struct {
	Client *storage_go.Client
	Bucket string
}

func NewStore(client *storage_go.Client, bucket string) *Store {
	return &Store{Client: client, Bucket: bucket}
}

// Upload stores a multipart file under the given object path and returns
// its public URL.
func (s *Store) Upload(path string, file *multipart.FileHeader) (string, error) {
	fileBody, err := file.Open()
	if err != nil {
		return "", err
	}
	defer fileBody.Close()

	fileBytes, err := io.ReadAll(fileBody)
	if err != nil {
		return "", err
	}

	// Reset the file pointer after sniffing the content type
	if _, err := fileBody.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	contentType := http.DetectContentType(fileBytes)

	if _, err := s.Client.UploadFile(s.Bucket, path, fileBody, storage_go.FileOptions{ContentType: &contentType}); err != nil {
		return "", err
	}

	response := s.Client.GetPublicUrl(s.Bucket, path)
	return response.SignedURL, nil
}

// Delete removes an object by path.
func (s *Store) Delete(path string) error {
	_, err := s.Client.RemoveFile(s.Bucket, []string{path})
	return err
}
