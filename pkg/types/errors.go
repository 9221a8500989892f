package types

import "errors"

var (
	ErrModuleNotFound   = errors.New("module not found in catalog")
	ErrDocumentNotFound = errors.New("document not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrCityNotFound     = errors.New("city not found")
	ErrSchoolNotFound   = errors.New("school not found")
)
