// Package cqrs groups the command side of Command Query Responsibility Segregation.
//
// Subpackage command holds the result model, handler contracts, execution modes, the
// resolution contract and the dispatcher. Subpackage command/wrapper holds the wrappers
// (validation, recovery, logging, tracing and more) composed around core handlers, and
// command/pipeline is the registry that composes them per execution mode.
package cqrs
