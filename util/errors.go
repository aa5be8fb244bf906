package util

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrUnsupportedURL = &Error{Message: "unsupported URL"}
)
