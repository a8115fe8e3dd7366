package multipart

import (
	"bytes"
	"errors"
	"io"
	"mime"
	stdmultipart "mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	form := NewWithBoundary("B")
	form.AddText("data", "{...}")
	form.AddFile("file", "a.txt", []byte("hello"))

	expected := "--B\r\n" +
		"Content-Disposition: form-data; name=\"data\"\r\n\r\n" +
		"{...}\r\n" +
		"--B\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"a.txt\"\r\n\r\n" +
		"hello\r\n" +
		"--B--"
	assert.Equal(t, expected, string(form.Bytes()))
	assert.Equal(t, form.Bytes(), form.Bytes())
	assert.Equal(t, len(expected), form.Len())
}

func TestEmptyForm(t *testing.T) {
	form := NewWithBoundary("B")
	assert.Equal(t, "--B--", string(form.Bytes()))
	assert.Equal(t, 5, form.Len())
}

func TestFieldOrder(t *testing.T) {
	form := NewWithBoundary("B")
	form.AddFile("second.jar", "second.jar", []byte("2"))
	form.AddText("data", "{}")
	form.AddFile("first.jar", "first.jar", []byte("1"))

	body := string(form.Bytes())
	second := strings.Index(body, `name="second.jar"`)
	data := strings.Index(body, `name="data"`)
	first := strings.Index(body, `name="first.jar"`)
	assert.True(t, second < data && data < first)
}

func TestQuotedNames(t *testing.T) {
	form := NewWithBoundary("B")
	form.AddFile(`we"ird\name`, "a\rb\nc", []byte{0, 1, 2})

	expected := "--B\r\n" +
		"Content-Disposition: form-data; name=\"we\\\"ird\\\\name\"; filename=\"a\\\rb\nc\"\r\n\r\n" +
		"\x00\x01\x02\r\n" +
		"--B--"
	assert.Equal(t, expected, string(form.Bytes()))
	assert.Equal(t, len(expected), form.Len())
}

func TestContentType(t *testing.T) {
	assert.Equal(t, `multipart/form-data; boundary="B"`, NewWithBoundary("B").ContentType())
	assert.Equal(t, `multipart/form-data; boundary="a\"b\\c"`, NewWithBoundary(`a"b\c`).ContentType())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "plain name.jar", Quote("plain name.jar"))
	assert.Equal(t, `a\"b\\c`, Quote(`a"b\c`))
	assert.Equal(t, "a\\\rb\nc\t", Quote("a\rb\nc\t"))
	assert.Equal(t, "", Quote(""))
	assert.Equal(t, "\xff\\\"", Quote("\xff\""))
}

func TestRandomBoundary(t *testing.T) {
	a, b := New(), New()
	assert.True(t, strings.HasPrefix(a.Boundary(), "mirror-upload-"))
	assert.NotEqual(t, a.Boundary(), b.Boundary())

	form := New()
	before := form.Boundary()
	form.AddText("data", "{}")
	assert.Equal(t, before, form.Boundary())
}

func TestBoundaryCollision(t *testing.T) {
	form := New()
	taken := form.Boundary()
	payload := []byte("xx--" + taken + "yy")
	form.AddFile("file", "a.bin", payload)
	assert.NotEqual(t, taken, form.Boundary())
	assert.False(t, bytes.Contains(payload, []byte(form.Boundary())))

	form = New()
	taken = form.Boundary()
	form.AddText(taken, "value")
	assert.NotEqual(t, taken, form.Boundary())
}

func TestFixedBoundaryIsKept(t *testing.T) {
	form := NewWithBoundary("B")
	form.AddText("data", "contains B")
	assert.Equal(t, "B", form.Boundary())
}

func TestRoundTrip(t *testing.T) {
	form := New()
	form.AddText("metadata", `{"changelog":"fixes"}`)
	form.AddFile(`file "1"`, "mod-1.0.jar", []byte("PK\x03\x04 jar bytes\r\n--"))

	mediaType, params, err := mime.ParseMediaType(form.ContentType())
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	assert.Equal(t, form.Boundary(), params["boundary"])

	reader := stdmultipart.NewReader(form.Reader(), params["boundary"])
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "metadata", part.FormName())
	assert.Equal(t, "", part.FileName())
	data, _ := io.ReadAll(part)
	assert.Equal(t, `{"changelog":"fixes"}`, string(data))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `file "1"`, part.FormName())
	assert.Equal(t, "mod-1.0.jar", part.FileName())
	data, _ = io.ReadAll(part)
	assert.Equal(t, "PK\x03\x04 jar bytes\r\n--", string(data))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestWriteTo(t *testing.T) {
	form := NewWithBoundary("B")
	form.AddText("a", "1")
	buf := &bytes.Buffer{}
	n, err := form.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(form.Len()), n)
	assert.Equal(t, form.Bytes(), buf.Bytes())

	n, err = form.WriteTo(&failingWriter{limit: 3})
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, int64(3), n)
}

type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0

		return n, errors.New("disk full")
	}
	w.limit -= len(p)

	return len(p), nil
}
