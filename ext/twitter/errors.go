package twitter

import "xgallery/util"

var (
	ErrURLNotFound = &util.Error{Message: "URL not found in response"}
)
