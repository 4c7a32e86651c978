//go:build swag

package swaggerkit

import (
	// registers the "api" instance produced by go generate in services/api
	_ "bizdash/internal/services/api/docs"

	"github.com/swaggo/swag/v2"
)

// docReader returns the swag document built from the handler annotations
var docReader = func() (string, bool) {
	doc, err := swag.ReadDoc("api")
	if err != nil {
		return "", false
	}
	return doc, true
}
