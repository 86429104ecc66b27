// The registry-server tool serves the read-only OCN registry API over
// HTTP, backed by a read-only registry client. See the httpserver package
// for the exposed routes.
package main
