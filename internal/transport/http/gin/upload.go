package httpgin

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/kirinyoku/evently/internal/storage"
)

const (
	payloadField   = "payload"
	imageField     = "image"
	docFieldPrefix = "doc_"
)

// bindEntry decodes either a JSON body or a multipart form whose "payload"
// field carries the same JSON. The form is nil for JSON requests.
func bindEntry(c *gin.Context, dst any) (*multipart.Form, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, c.ShouldBindJSON(dst)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	if raw := form.Value[payloadField]; len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw[0]), dst); err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return nil, err
	}

	return form, nil
}

// uploadImage stores the "image" file of a form, if any.
func uploadImage(c *gin.Context, up storage.Uploader, form *multipart.Form, folder string) (string, error) {
	if form == nil || len(form.File[imageField]) == 0 {
		return "", nil
	}

	return uploadOne(c, up, form.File[imageField][0], folder)
}

// uploadDocuments stores every "doc_<kind>" file of a form and returns the
// URLs keyed by kind.
func uploadDocuments(c *gin.Context, up storage.Uploader, form *multipart.Form) (map[string]string, error) {
	if form == nil {
		return nil, nil
	}

	docs := make(map[string]string)
	for field, files := range form.File {
		kind, ok := strings.CutPrefix(field, docFieldPrefix)
		if !ok || kind == "" || len(files) == 0 {
			continue
		}

		url, err := uploadOne(c, up, files[0], storage.FolderDocuments)
		if err != nil {
			return nil, err
		}
		docs[kind] = url
	}

	return docs, nil
}

func uploadOne(c *gin.Context, up storage.Uploader, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return up.Upload(c.Request.Context(), f, folder)
}

func mergeDocuments(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}

	if dst == nil {
		dst = make(map[string]string, len(src))
	}

	for k, v := range src {
		dst[k] = v
	}

	return dst
}
