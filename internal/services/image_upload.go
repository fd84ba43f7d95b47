package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// ImgurResponse is the Imgur API response envelope
type ImgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImageUploadResult is what handlers hand back to the client
type ImageUploadResult struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Uploads go through a bounded client; a hung blob store should fail the
// request, not the worker.
var uploadClient = &http.Client{Timeout: 10 * time.Second}

// UploadImage uploads a post or offer image to Imgur and returns its URL.
func UploadImage(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	clientID := os.Getenv("IMGUR_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("IMGUR_CLIENT_ID not configured")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64Image); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	if err := writer.WriteField("name", uuid.NewString()); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.imgur.com/3/image", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	var imgurResp ImgurResponse
	if err := json.NewDecoder(resp.Body).Decode(&imgurResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !imgurResp.Success {
		return nil, fmt.Errorf("imgur upload failed with status %d", imgurResp.Status)
	}

	return &ImageUploadResult{
		URL: imgurResp.Data.Link,
		ID:  imgurResp.Data.ID,
	}, nil
}
