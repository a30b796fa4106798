package usecase

// Error is a recoverable, caller-facing failure carrying a stable machine
// readable code next to the human message. Anything not expressed as an
// *Error is treated by handlers as an opaque internal fault.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrDuplicateEmail = &Error{Code: "DUPLICATE_EMAIL", Message: "email already registered"}

	// Credential failures deliberately share one message: callers must
	// not learn whether the account exists or the password was wrong.
	ErrInvalidCredentials = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}

	ErrAccountLocked   = &Error{Code: "ACCOUNT_LOCKED", Message: "account temporarily locked due to failed login attempts"}
	ErrAccountDisabled = &Error{Code: "ACCOUNT_DISABLED", Message: "account is disabled"}
	ErrAccountNotFound = &Error{Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}

	ErrTokenInvalidOrExpired = &Error{Code: "TOKEN_INVALID_OR_EXPIRED", Message: "token is invalid or expired"}
	ErrTokenWrongType        = &Error{Code: "TOKEN_WRONG_TYPE", Message: "token is of the wrong type"}

	ErrRoleNotFound      = &Error{Code: "ROLE_NOT_FOUND", Message: "role not found"}
	ErrLastRoleViolation = &Error{Code: "LAST_ROLE_VIOLATION", Message: "account must keep at least one role"}

	ErrPasswordPolicyViolation = &Error{
		Code:    "PASSWORD_POLICY_VIOLATION",
		Message: "password must be at least 8 characters with lowercase, uppercase, digit and symbol",
	}

	ErrProductNotFound  = &Error{Code: "PRODUCT_NOT_FOUND", Message: "product not found"}
	ErrCategoryNotFound = &Error{Code: "CATEGORY_NOT_FOUND", Message: "category not found"}
	ErrBrandNotFound    = &Error{Code: "BRAND_NOT_FOUND", Message: "brand not found"}
	ErrDuplicateSKU     = &Error{Code: "DUPLICATE_SKU", Message: "sku already exists"}
	ErrDuplicateName    = &Error{Code: "DUPLICATE_NAME", Message: "name already exists"}
)
