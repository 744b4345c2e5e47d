package domain

// DocumentID is the opaque token the remote service assigns to an upload.
type DocumentID string

// File is a user-selected binary payload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// FileInfo is what local inspection learned about a file before upload.
type FileInfo struct {
	Size        int64
	ContentType string
	Pages       int
}

type UploadReceipt struct {
	DocumentID DocumentID `json:"filename"`
	Message    string     `json:"message,omitempty"`
}

type Answer struct {
	Text string `json:"answer"`
}
