package module

import "bizdash/internal/services/api/periods/domain"

// Ports is the port set the periods module publishes
type Ports struct {
	Periods domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.b.Ports }
