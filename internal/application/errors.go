package application

import "errors"

var ErrRefreshFailed = errors.New("refresh failed")
