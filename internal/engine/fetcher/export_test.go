package fetcher

// Retry exposes retry for tests.
var Retry = retry
