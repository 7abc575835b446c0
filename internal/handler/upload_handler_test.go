package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"herald/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloud struct {
	gotFolder   string
	gotPublicID string
	thumbWidth  int
}

func (f *fakeCloud) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (*cloudinary.UploadResult, error) {
	f.gotFolder = folder
	f.gotPublicID = publicID
	return &cloudinary.UploadResult{
		URL:      "https://cdn.test/full/" + publicID,
		PublicID: folder + "/" + publicID,
	}, nil
}

func (f *fakeCloud) OptimizedURL(publicID string, width int) string {
	f.thumbWidth = width
	return "https://cdn.test/w/" + publicID
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "art.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadImage_ReturnsFullAndThumbnailURLs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cloud := &fakeCloud{}
	r := gin.New()
	r.POST("/upload", NewUploadHandler(cloud).UploadImage)

	body, contentType := multipartImage(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.test/full/"+cloud.gotPublicID, resp["url"])
	assert.Equal(t, "https://cdn.test/w/herald/notifications/"+cloud.gotPublicID, resp["thumbnail_url"])
	assert.Equal(t, "herald/notifications", cloud.gotFolder)
	assert.Equal(t, thumbnailWidth, cloud.thumbWidth)
}

func TestUploadImage_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", NewUploadHandler(nil).UploadImage)

	body, contentType := multipartImage(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUploadImage_MissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", NewUploadHandler(&fakeCloud{}).UploadImage)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
