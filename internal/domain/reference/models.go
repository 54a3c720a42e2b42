// Package reference covers the flat lookup entities an employee points at:
// departments, groups, roles and banks. Their admin screens live elsewhere;
// this package only exposes the service operations the employee form and the
// collaborator boundary need.
package reference

type Department struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type Group struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
