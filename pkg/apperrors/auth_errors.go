package apperrors

var (
	// Domain errors — used in usecase/delivery
	ErrUserExists         = AlreadyExists("user with this username or email already exists")
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrMissingAccessToken = Unauthorized("unauthorized request")
	ErrInvalidAccessToken = Unauthorized("invalid access token")
	ErrMissingRefresh     = Unauthorized("refresh token is required")
	ErrStaleRefresh       = Unauthorized("refresh token is expired or invalid")
	ErrAllFieldsRequired  = InvalidArg("all fields are required")
	ErrAvatarRequired     = InvalidArg("avatar file is required")
)

func ErrTokenGeneration(cause error) error {
	return Wrap(CodeInternal, "something went wrong while generating tokens", cause)
}

func ErrMediaUpload(cause error) error {
	return Wrap(CodeInternal, "failed to upload media file", cause)
}
