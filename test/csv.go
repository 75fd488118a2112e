package test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

// CSVFile builds a multipart request body containing the content as an
// uploaded file with the given name.
//
// File contents are returned as a buffer and a map for the HTTP request headers.
func CSVFile(t *testing.T, name, content string) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)

	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", name)
	if err != nil {
		assert.Fail(t, err.Error())
	}

	if _, err := w.Write([]byte(content)); err != nil {
		assert.Fail(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
