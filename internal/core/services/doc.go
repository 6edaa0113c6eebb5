// Package services implements the driving ports: connection
// provisioning, schema registration and polling, record transformation,
// and data synchronisation. Services depend only on domain types and the
// driven ports; adapters supply the infrastructure.
package services
