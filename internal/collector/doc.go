// Package collector turns command-line arguments or interactive answers into
// a request.Request.
//
// Direct mode (a URL argument) applies config and flag preferences without
// prompting. Interactive mode asks, in order, for the URL, download type,
// destination, format and thumbnail choice. The working directory and the
// filesystem are injected so both modes run against fakes in tests.
package collector
