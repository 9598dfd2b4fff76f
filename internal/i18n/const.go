package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// User related errors
var (
	ErrorUserNotFound             = NewErrorWithCode("ErrorUserNotFound", ErrorNotFound)
	ErrorInvalidCredentials       = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorUserNamePasswordRequired = NewErrorWithCode("ErrorUserNamePasswordRequired", ErrorBadRequest)
	ErrorInvalidOldPassword       = NewErrorWithCode("ErrorInvalidOldPassword", ErrorBadRequest)
	ErrorUsernameExists           = NewErrorWithCode("ErrorUsernameExists", ErrorConflict)
	ErrorEmailExists              = NewErrorWithCode("ErrorEmailExists", ErrorConflict)
	ErrorInvalidRole              = NewErrorWithCode("ErrorInvalidRole", ErrorBadRequest)
	ErrorRoleImmutable            = NewErrorWithCode("ErrorRoleImmutable", ErrorBadRequest)
	ErrorLastSuperAdmin           = NewErrorWithCode("ErrorLastSuperAdmin", ErrorConflict)
	ErrorAdminOwnsRestaurant      = NewErrorWithCode("ErrorAdminOwnsRestaurant", ErrorConflict)
)

// Restaurant related errors
var (
	ErrorRestaurantNotFound     = NewErrorWithCode("ErrorRestaurantNotFound", ErrorNotFound)
	ErrorRestaurantNameRequired = NewErrorWithCode("ErrorRestaurantNameRequired", ErrorBadRequest)
	ErrorRestaurantPermission   = NewErrorWithCode("ErrorRestaurantPermission", ErrorForbidden)
	ErrorAdminAlreadyAssigned   = NewErrorWithCode("ErrorAdminAlreadyAssigned", ErrorConflict)
	ErrorAdminNotFound          = NewErrorWithCode("ErrorAdminNotFound", ErrorBadRequest)
	ErrorInvalidStatus          = NewErrorWithCode("ErrorInvalidStatus", ErrorBadRequest)
	ErrorSlugExists             = NewErrorWithCode("ErrorSlugExists", ErrorConflict)
)

// Menu content related errors
var (
	ErrorCategoryNotFound     = NewErrorWithCode("ErrorCategoryNotFound", ErrorNotFound)
	ErrorCategoryNameRequired = NewErrorWithCode("ErrorCategoryNameRequired", ErrorBadRequest)
	ErrorCategoryMismatch     = NewErrorWithCode("ErrorCategoryMismatch", ErrorBadRequest)
	ErrorMenuItemNotFound     = NewErrorWithCode("ErrorMenuItemNotFound", ErrorNotFound)
	ErrorMenuItemNameRequired = NewErrorWithCode("ErrorMenuItemNameRequired", ErrorBadRequest)
	ErrorInvalidPrice         = NewErrorWithCode("ErrorInvalidPrice", ErrorBadRequest)
	ErrorSocialLinkNotFound   = NewErrorWithCode("ErrorSocialLinkNotFound", ErrorNotFound)
	ErrorQRCodeNotFound       = NewErrorWithCode("ErrorQRCodeNotFound", ErrorNotFound)
	ErrorMenuNotFound         = NewErrorWithCode("ErrorMenuNotFound", ErrorNotFound)
	ErrorPreviewTokenInvalid  = NewErrorWithCode("ErrorPreviewTokenInvalid", ErrorUnauthorized)
)

// General validation errors
var (
	ErrorRequiredField          = NewErrorWithCode("ErrorRequiredField", ErrorBadRequest)
	ErrorInvalidFormat          = NewErrorWithCode("ErrorInvalidFormat", ErrorBadRequest)
	ErrorInvalidValue           = NewErrorWithCode("ErrorInvalidValue", ErrorBadRequest)
	ErrorDuplicateEntity        = NewErrorWithCode("ErrorDuplicateEntity", ErrorConflict)
	ErrorDataIntegrityViolation = NewErrorWithCode("ErrorDataIntegrityViolation", ErrorBadRequest)
)

// Auth related success messages
const (
	SuccessLogin           = "SuccessLogin"
	SuccessLogout          = "SuccessLogout"
	SuccessPasswordChanged = "SuccessPasswordChanged"
	SuccessUserInfo        = "SuccessUserInfo"
)

// User related success messages
const (
	SuccessUserCreated = "SuccessUserCreated"
	SuccessUserUpdated = "SuccessUserUpdated"
	SuccessUserDeleted = "SuccessUserDeleted"
	SuccessUserList    = "SuccessUserList"
)

// Restaurant related success messages
const (
	SuccessRestaurantCreated = "SuccessRestaurantCreated"
	SuccessRestaurantUpdated = "SuccessRestaurantUpdated"
	SuccessRestaurantDeleted = "SuccessRestaurantDeleted"
	SuccessRestaurantInfo    = "SuccessRestaurantInfo"
	SuccessRestaurantList    = "SuccessRestaurantList"
	SuccessPreviewToken      = "SuccessPreviewToken"
)

// Menu content related success messages
const (
	SuccessCategoryCreated   = "SuccessCategoryCreated"
	SuccessCategoryUpdated   = "SuccessCategoryUpdated"
	SuccessCategoryDeleted   = "SuccessCategoryDeleted"
	SuccessCategoryList      = "SuccessCategoryList"
	SuccessMenuItemCreated   = "SuccessMenuItemCreated"
	SuccessMenuItemUpdated   = "SuccessMenuItemUpdated"
	SuccessMenuItemDeleted   = "SuccessMenuItemDeleted"
	SuccessMenuItemList      = "SuccessMenuItemList"
	SuccessSocialLinkCreated = "SuccessSocialLinkCreated"
	SuccessSocialLinkUpdated = "SuccessSocialLinkUpdated"
	SuccessSocialLinkDeleted = "SuccessSocialLinkDeleted"
	SuccessSocialLinkList    = "SuccessSocialLinkList"
	SuccessQRCodeCreated     = "SuccessQRCodeCreated"
	SuccessQRCodeDeleted     = "SuccessQRCodeDeleted"
	SuccessQRCodeList        = "SuccessQRCodeList"
)

// Activity related success messages
const (
	SuccessActivityList = "SuccessActivityList"
)

// General success messages
const (
	SuccessOperationCompleted = "SuccessOperationCompleted"
)
