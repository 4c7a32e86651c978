//go:build !swag

package swaggerkit

// docReader has no generated document in this build; Document registrations are served alone
var docReader = func() (string, bool) { return "", false }
