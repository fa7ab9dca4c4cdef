package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds ad hoc jobs wired by name. The built-in catalog refresh
// and logo sync jobs register themselves through cron.Register instead, so
// this map stays free of service imports.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
