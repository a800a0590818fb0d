// Package memory defines the conversation-history contract used by the
// session layer. The process-lifetime implementation lives in the history
// subpackage; the interface exists so a host can substitute its own store.
package memory
