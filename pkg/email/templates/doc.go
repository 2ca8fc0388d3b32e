// Package templates holds the templ components used for e-mail bodies and a
// Render helper that turns a component into an HTML string.
//
// Components are written in .templ files; the matching _templ.go files are
// produced by `templ generate` and committed.
//
//go:generate templ generate
package templates
