package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnknownCity         = errors.New("unknown city key")
	ErrWrongCityFile       = errors.New("export does not belong to this city")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoUpload            = errors.New("no upload exists for this city")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDuplicateCityKey    = errors.New("city key already exists")
)
