// Package ui holds the small set of styled output helpers used by the
// one-shot lbdash commands (init, backend, balance). The full-screen
// dashboard draws itself in the monitor package.
//
// Colors are truecolor hex values; DisableColors drops to plain ASCII for
// --no-color and NO_COLOR.
//
//	s := ui.NewSpinner("Probing backends")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
package ui
