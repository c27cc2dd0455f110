package domain

import (
	"time"
)

// UploadStatus is the lifecycle state of a document submission.
type UploadStatus string

const (
	StatusUploading UploadStatus = "uploading"
	StatusSucceeded UploadStatus = "success"
	StatusFailed    UploadStatus = "error"
)

// Descriptor is the payload handed over by the document picker. The picker
// owns the underlying file; SourceRef is an opaque handle to it.
type Descriptor struct {
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	SourceRef string `json:"sourceRef"`
}

// Submission is one tracked document going through the simulated review
// upload. Progress is meaningful only while Status is StatusUploading and
// never decreases. Reason is set only when Status is StatusFailed.
type Submission struct {
	ID        string       `json:"id"`
	FileName  string       `json:"fileName"`
	MimeType  string       `json:"mimeType"`
	SizeBytes int64        `json:"sizeBytes"`
	SourceRef string       `json:"sourceRef"`
	Status    UploadStatus `json:"status"`
	Progress  int          `json:"progress"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Review is the stored receipt of a submitted document analysis, kept in the
// local document store so the profile can show submission history.
type Review struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userID"`
	FileName  string       `json:"fileName"`
	MimeType  string       `json:"mimeType"`
	SizeBytes int64        `json:"sizeBytes"`
	Status    UploadStatus `json:"status"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
