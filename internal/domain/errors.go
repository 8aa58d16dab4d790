package domain

import "errors"

var (
	ErrInvalidPath         = errors.New("path is not absolute")
	ErrPathNotFound        = errors.New("path does not exist")
	ErrNotADirectory       = errors.New("path is not a directory")
	ErrMissingSetting      = errors.New("setting missing from d3dx_ini mapping")
	ErrMissingSettingValue = errors.New("setting value missing")
	ErrIniWrite            = errors.New("ini write failed")
	ErrCorruptInstall      = errors.New("installation is damaged")
	ErrGameNotFound        = errors.New("no integration for game")
	ErrBadHookSignature    = errors.New("hook command signature mismatch")
)
