// Package viewmodel holds the structs page templates read from.
package viewmodel

// User represents the logged-in visitor exposed to templates.
type User struct {
	Name    string
	Email   string
	Role    string
	Initial string
}
