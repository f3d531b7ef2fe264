package middleware

import "github.com/gin-gonic/gin"

// accountKey is the key used to store the authenticated caller's ledger
// account address in the context.
const accountKey = contextKey("account")

// GetAccountFromContext retrieves the authenticated account address from the
// Gin context. It returns the account and a boolean indicating if it was found.
func GetAccountFromContext(c *gin.Context) (string, bool) {
	accountVal, exists := c.Get(string(accountKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(accountKey)
		if ctxVal != nil {
			account, ok := ctxVal.(string)
			return account, ok
		}
		return "", false
	}

	account, ok := accountVal.(string)
	if !ok {
		return "", false
	}

	return account, true
}
