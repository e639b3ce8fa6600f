// Package application wires configuration, logging, the worker pool and the
// selected strategy together, runs one command against a workload and writes
// its JSON report. It keeps the main package focused on CLI parsing and
// signal handling.
package application
