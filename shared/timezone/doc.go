// Package timezone pins every displayed time to the property's local zone.
//
// Check-in and check-out stamps arrive from guests and payment processors in
// mixed representations, so everything user-facing is rendered through this
// package rather than the server's local clock.
//
//	now := timezone.Now()
//	local := timezone.ToAppTime(someTime)
//	formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//	t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// The zone is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("UTC", "Asia/Karachi", "Europe/London") and is
// initialized when the package is imported.
package timezone
