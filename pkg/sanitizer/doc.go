// Package sanitizer provides composable string transformations for cleaning
// user input before it is validated or stored.
//
// Transformations are plain func(T) T values, chained with Apply or stored as
// reusable pipelines with Compose:
//
//	normalize := sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)
//	channel := normalize("  EMAIL ") // "email"
package sanitizer
