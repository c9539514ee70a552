package health

import "periphd/internal/config"

// Backend identifies which probe applies to a tracked service.
type Backend string

const (
	BackendContainer Backend = "container"
	BackendInit      Backend = "init"
)

// Service is one tracked service. The healthy flag is mutated only by the
// Prober; readers take snapshots through Statuses.
type Service struct {
	Label   string
	Backend Backend
	Name    string // container name or init unit name

	healthy bool
}

// Status is a read-only snapshot of one tracked service.
type Status struct {
	Label   string  `json:"label"`
	Backend Backend `json:"backend"`
	Name    string  `json:"name"`
	Healthy bool    `json:"healthy"`
}

func servicesFromConfig(entries []config.Service) []*Service {
	services := make([]*Service, 0, len(entries))
	for _, entry := range entries {
		svc := &Service{Label: entry.Label}
		switch {
		case entry.Container != "":
			svc.Backend = BackendContainer
			svc.Name = entry.Container
		case entry.Unit != "":
			svc.Backend = BackendInit
			svc.Name = entry.Unit
		default:
			continue
		}
		services = append(services, svc)
	}
	return services
}
