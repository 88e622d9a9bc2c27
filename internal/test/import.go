package test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

// BackupFile builds a multipart request body containing a single uploaded
// file with the passed content. It returns the body and the headers the
// request needs.
func BackupFile(t *testing.T, name string, content []byte) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", name)
	if err != nil {
		assert.Fail(t, err.Error())
	}

	if _, err := w.Write(content); err != nil {
		assert.Fail(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
