// Package ciutil provides utilities for working with CI environments and
// the environment variables that configure tests, such as locating the
// project root and resolving the test database URL.
package ciutil
