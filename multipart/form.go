// Package multipart builds multipart/form-data request bodies.
//
// Fields are serialised in the order they were added. The encoder has no
// failure modes: any name and any payload is accepted.
package multipart

import (
	"bytes"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	dashes = []byte("--")
	crlf   = []byte("\r\n")
)

// Form is the data of a multipart/form-data body. A Form is not safe for
// concurrent mutation; once built it may be serialised any number of times.
type Form struct {
	fields   []field
	boundary string
	fixed    bool
}

type field struct {
	name     string
	fileName string
	isFile   bool
	data     []byte
}

func (f *field) contains(boundary string) bool {
	return strings.Contains(f.name, boundary) ||
		strings.Contains(f.fileName, boundary) ||
		bytes.Contains(f.data, []byte(boundary))
}

// New creates an empty form with a random boundary. The boundary is replaced
// whenever an added field happens to contain it.
func New() *Form {
	return &Form{boundary: newBoundary()}
}

// NewWithBoundary creates an empty form that always uses boundary.
func NewWithBoundary(boundary string) *Form {
	return &Form{boundary: boundary, fixed: true}
}

func newBoundary() string {
	return "mirror-upload-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AddText adds a field without a file name.
func (f *Form) AddText(name, value string) {
	f.add(field{name: name, data: []byte(value)})
}

// AddFile adds a named file. data is kept, not copied.
func (f *Form) AddFile(name, fileName string, data []byte) {
	f.add(field{name: name, fileName: fileName, isFile: true, data: data})
}

func (f *Form) add(fl field) {
	f.fields = append(f.fields, fl)
	if f.fixed || !fl.contains(f.boundary) {
		return
	}
	for f.collides() {
		f.boundary = newBoundary()
	}
}

func (f *Form) collides() bool {
	for i := range f.fields {
		if f.fields[i].contains(f.boundary) {
			return true
		}
	}

	return false
}

func (f *Form) Boundary() string {
	return f.boundary
}

// ContentType returns the Content-Type header value, including the boundary.
func (f *Form) ContentType() string {
	return `multipart/form-data; boundary="` + Quote(f.boundary) + `"`
}

// Len returns the size of the serialised body in bytes.
func (f *Form) Len() int {
	n := 0
	for i := range f.fields {
		fl := &f.fields[i]
		n += len(dashes) + len(f.boundary) + len(crlf)
		n += len(dispositionPrefix) + len(Quote(fl.name)) + 1
		if fl.isFile {
			n += len(fileNamePrefix) + len(Quote(fl.fileName)) + 1
		}
		n += 2*len(crlf) + len(fl.data) + len(crlf)
	}

	return n + 2*len(dashes) + len(f.boundary)
}

const (
	dispositionPrefix = `Content-Disposition: form-data; name="`
	fileNamePrefix    = `; filename="`
)

// Bytes serialises the form. The body ends with the closing boundary and no
// trailing line break.
func (f *Form) Bytes() []byte {
	buf := &bytes.Buffer{}
	buf.Grow(f.Len())
	f.write(buf)

	return buf.Bytes()
}

// Reader returns a reader over the serialised form.
func (f *Form) Reader() io.Reader {
	return bytes.NewReader(f.Bytes())
}

// WriteTo writes the serialised form to w.
func (f *Form) WriteTo(w io.Writer) (int64, error) {
	ew := &errWriter{w: w}
	f.write(ew)

	return ew.n, ew.err
}

type writer interface {
	Write(p []byte) (int, error)
	WriteString(s string) (int, error)
}

func (f *Form) write(w writer) {
	for i := range f.fields {
		fl := &f.fields[i]
		w.Write(dashes)
		w.WriteString(f.boundary)
		w.Write(crlf)
		w.WriteString(dispositionPrefix)
		w.WriteString(Quote(fl.name))
		w.WriteString(`"`)
		if fl.isFile {
			w.WriteString(fileNamePrefix)
			w.WriteString(Quote(fl.fileName))
			w.WriteString(`"`)
		}
		w.Write(crlf)
		w.Write(crlf)
		w.Write(fl.data)
		w.Write(crlf)
	}
	w.Write(dashes)
	w.WriteString(f.boundary)
	w.Write(dashes)
}

// errWriter stops writing after the first error.
type errWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.n += int64(n)
	ew.err = err

	return n, err
}

func (ew *errWriter) WriteString(s string) (int, error) {
	return ew.Write([]byte(s))
}
