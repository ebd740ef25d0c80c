// Package testutil provides shared test helpers: a fluent activity builder
// and a scripted agent client returning canned streams. Only _test.go files
// should import this package.
package testutil
