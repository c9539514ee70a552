// Package periph defines the capability tags that describe which physical
// peripherals a deployment carries.
//
// A Set is fixed when the orchestrator is constructed and drives which
// sub-components are activated; an absent capability leaves its sub-component
// inert rather than failing the daemon.
package periph
