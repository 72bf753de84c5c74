package domain

import "errors"

// ErrUploadCanceled is an error thrown when an upload is canceled by the user
var ErrUploadCanceled = errors.New("upload canceled")

// ErrPayloadTooLarge is an error thrown when the store rejects a payload as too large
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrUploadNotFound is an error thrown when an upload is not found in the registry
var ErrUploadNotFound = errors.New("upload not found")

// ErrNoRasterSource is an error thrown when a file cannot be decoded into a raster source
var ErrNoRasterSource = errors.New("no raster source for file")
