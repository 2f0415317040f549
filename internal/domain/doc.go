// Package domain holds the sentinel errors shared by the embeddable server
// and its internal lifecycle manager.
package domain
