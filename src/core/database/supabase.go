package database

import (
	"errors"
	"os"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage initializes the storage client and returns it with the
// bucket name. Built once at startup and handed to the upload handlers.
func SupabaseStorage() (*storage_go.Client, string, error) {
	projectURL := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_KEY")
	bucketName := os.Getenv("BUCKET_NAME")

	if projectURL == "" || serviceKey == "" || bucketName == "" {
		return nil, "", errors.New("missing SUPABASE_URL, SUPABASE_KEY, or BUCKET_NAME in environment variables")
	}

	storageClient := storage_go.NewClient(projectURL+"/storage/v1", serviceKey, nil)
	return storageClient, bucketName, nil
}
