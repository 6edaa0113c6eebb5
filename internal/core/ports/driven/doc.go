// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - TokenProvider: client-credentials token exchange (adapters/driven/auth)
//   - ItemStore: the Microsoft Graph external connection API (adapters/driven/graph)
//   - RecordStore / RecordStoreFactory: the portal Postgres database
//     (adapters/driven/postgres)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
