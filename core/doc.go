// Package core contains the domain events of the library circulation:
// books being added, patrons being registered, books being borrowed and returned,
// and the failures of those operations.
//
// Events describe meaningful business occurrences, not CRUD changes. They are
// journaled by the shell after the library core made its decision.
//
// All domain events implement DomainEvent.
package core
