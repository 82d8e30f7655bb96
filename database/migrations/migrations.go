// Package migrations registers the POS schema with pkg/migration. Import it
// for side effects wherever migrations are run.
package migrations
