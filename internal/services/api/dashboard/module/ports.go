package module

import "bizdash/internal/services/api/dashboard/domain"

// Ports is the port set the dashboard module publishes
type Ports struct {
	Dashboard domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.b.Ports }
