package types

import "time"

// Entry type values as they appear on the wire.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
	TypeSymlink   = "symlink"
)

// Entry is a point-in-time snapshot of one filesystem node. Field names are
// part of the wire contract; external renderers key off them directly.
type Entry struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	Type          string    `json:"type"`
	Size          int64     `json:"size"`
	Modified      time.Time `json:"modified"`
	Created       time.Time `json:"created"`
	Extension     string    `json:"extension"`
	IsHidden      bool      `json:"isHidden"`
	IsReadOnly    bool      `json:"isReadOnly"`
	Mode          uint32    `json:"mode"`
	Permissions   string    `json:"permissions"`
	Owner         string    `json:"owner"`
	Group         string    `json:"group"`
	SymlinkTarget string    `json:"symlinkTarget"`
	Depth         int       `json:"depth,omitempty"`
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool { return e.Type == TypeDirectory }

// DiskStats describes capacity and usage of the filesystem containing a path.
type DiskStats struct {
	Path           string  `json:"path"`
	TotalBytes     uint64  `json:"totalBytes"`
	FreeBytes      uint64  `json:"freeBytes"`
	AvailableBytes uint64  `json:"availableBytes"`
	UsedBytes      uint64  `json:"usedBytes"`
	UsagePercent   float64 `json:"usagePercent"`
	FilesystemType string  `json:"filesystemType"`
}

// BatchOutcome records one source/destination pair of a batch operation.
// Skipped marks pairs not attempted after a fail-fast abort.
type BatchOutcome struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	OK          bool    `json:"ok"`
	Skipped     bool    `json:"skipped,omitempty"`
	Kind        string  `json:"kind,omitempty"`
	Error       *string `json:"error,omitempty"`
}

// BatchReport summarizes a multi-item mutation. Items preserve input order.
type BatchReport struct {
	ID        string         `json:"id"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Items     []BatchOutcome `json:"items"`
}

// WatchAction is the change-notification taxonomy.
type WatchAction string

const (
	ActionCreated    WatchAction = "created"
	ActionDeleted    WatchAction = "deleted"
	ActionModified   WatchAction = "modified"
	ActionMovedFrom  WatchAction = "movedFrom"
	ActionMovedTo    WatchAction = "movedTo"
	ActionAttributes WatchAction = "attributesChanged"
)

// WatchEvent is one filesystem change observed by a monitor.
type WatchEvent struct {
	FileName string      `json:"fileName"`
	Action   WatchAction `json:"action"`
}

// Result is the command execution envelope.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success builds a successful result.
func Success(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Failure builds a failed result.
func Failure(message string) *Result {
	return &Result{Success: false, Error: &message}
}
