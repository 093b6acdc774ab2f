// Package helper provides test doubles shared by the tests of the example application:
// a slog handler spy, a metrics collector spy, a scripted transaction source and a
// deterministic random string generator.
package helper
