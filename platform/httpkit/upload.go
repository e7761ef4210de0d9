package httpkit

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"horse_portal_backend/platform/apperr"
)

// maxMultipartMemory bounds the in-memory part of a multipart body.
const maxMultipartMemory = 32 << 20

// UploadedFile is one file read from a multipart request.
type UploadedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReadUpload reads the file in form field name. Bodies larger than maxBytes
// are rejected before the file is read.
func ReadUpload(c *gin.Context, name string, maxBytes int64) (UploadedFile, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+maxMultipartMemory)
	}
	header, err := c.FormFile(name)
	if err != nil {
		return UploadedFile{}, apperr.BadRequest(fmt.Sprintf("multipart field %q is required", name))
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return UploadedFile{}, apperr.BadRequest(fmt.Sprintf("file size %d bytes exceeds maximum allowed size of %d bytes", header.Size, maxBytes))
	}

	f, err := header.Open()
	if err != nil {
		return UploadedFile{}, apperr.BadRequest("unable to read uploaded file")
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return UploadedFile{}, apperr.BadRequest("unable to read uploaded file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return UploadedFile{FileName: header.Filename, ContentType: contentType, Data: data}, nil
}
