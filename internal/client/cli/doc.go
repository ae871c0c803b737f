// Package cli provides the interactive SweetShop command-line client.
//
// App reads commands from a single input stream and forwards them to an
// app.Store; output goes through a view.TerminalView. Commands that only
// make sense for administrators are refused client-side when the session is
// not an admin one, but the server still authorizes every call.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
