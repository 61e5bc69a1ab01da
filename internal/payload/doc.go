// Package payload generates payload files locally and manages them in the
// tester's /resources directory over SSH.
package payload
