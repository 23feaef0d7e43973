// Package testutil provides shared test doubles: an in-memory
// filesystem backed by afero and fake crontab runners.
package testutil
