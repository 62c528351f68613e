// Package runsum holds shared metadata for the runsum command wrapper.
package runsum

// Version is the current runsum release.
const Version = "0.3.1"
