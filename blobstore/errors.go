package blobstore

import "errors"

// ErrNotFound is returned by Get when no blob exists for the key
var ErrNotFound = errors.New("blobstore: key not found")
