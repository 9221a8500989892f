package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "bienvenue_access_token"
	COOKIE_REDIRECT_NAME     = "bienvenue_redirect"
	COOKIE_GUEST_NAME        = "bienvenue_guest"
	COOKIE_FLASH_NAME        = "bienvenue_flash"
)
