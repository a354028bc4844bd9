package common

// AuthorizationHeaderName carries the bearer token on protected requests.
const AuthorizationHeaderName = "Authorization"

// LegacyTokenHeaderName is accepted when no Authorization header is present.
const LegacyTokenHeaderName = "x-auth-token"

// BearerScheme prefixes the token in the Authorization header.
const BearerScheme = "Bearer"

// LocationBody marks a validation failure found in the request body.
const LocationBody = "body"

// Client-facing messages.
const (
	MsgUserExists          = "User already exists"
	MsgInvalidCredentials  = "Invalid Credentials"
	MsgIncorrectPassword   = "Current password is incorrect"
	MsgPasswordUpdated     = "Password updated successfully"
	MsgTokenInvalid        = "Token is not valid"
	MsgNotAuthorized       = "Not authorized"
	MsgTaskNotFound        = "Task not found"
	MsgUserNotFound        = "User not found"
	MsgTaskRemoved         = "Task removed"
	MsgServerError         = "Server error"
	MsgInvalidBody         = "Invalid request body"
	MsgNameRequired        = "Name is required"
	MsgInvalidEmail        = "Please include a valid email"
	MsgWeakPassword        = "Password must be 8+ chars, include uppercase, lowercase, number, and special char"
	MsgTitleRequired       = "Title is required"
	MsgOldPasswordRequired = "Current password is required"
)
