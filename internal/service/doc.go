// Package service runs a complete bpauto build.
//
// BuildService ties the pieces together: it emits the connection command,
// expands the Network section into a saved network, creates the configured
// superflows, writes the <prefix>create.tcl script, generates payload files
// and archives the resulting plan. Nothing is written to disk when any step
// before the script fails.
//
// # Event System
//
// Services publish events via EventBus as a build progresses. The command
// line tool subscribes to report progress; tests subscribe to check the
// sequence of steps.
package service
