// Package runlock guards against concurrent pipeline runs.
//
// Posting is a multi-step process that writes scratch files and talks to
// remote services, so two overlapping invocations sharing a work directory
// would corrupt each other. A flock-based lock file makes the second
// invocation fail fast instead.
package runlock
