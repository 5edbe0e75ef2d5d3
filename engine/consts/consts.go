package consts

import "time"

// Tunable Options
const (
	// For World Maintenance
	// MAP_AGE_BUDGET is the wall-clock budget one AllMapsAged call may spend aging maps
	MAP_AGE_BUDGET = time.Millisecond * 10
	// SERVER_TICK_INTERVAL is the tick interval of the server main loop => affect timer resolution
	SERVER_TICK_INTERVAL = time.Millisecond * 100

	// For Operation Monitor
	// OPMON_DUMP_INTERVAL is the interval to print opmon infos to output
	OPMON_DUMP_INTERVAL = 0
)

// Warn thresholds for monitored operations
const (
	// OPMON_AGE_WARN_THRESHOLD warns when one budgeted aging call overruns badly
	OPMON_AGE_WARN_THRESHOLD = time.Millisecond * 50
	// OPMON_SAVE_WARN_THRESHOLD warns when a full world save takes too long
	OPMON_SAVE_WARN_THRESHOLD = time.Second * 2
	// OPMON_EXPORT_WARN_THRESHOLD warns when a full world export takes too long
	OPMON_EXPORT_WARN_THRESHOLD = time.Second * 5
)

// Debug Options
const (
	// DEBUG_SAVE_LOAD prints save & load debug logs
	DEBUG_SAVE_LOAD = false
)

//  System level configurations
const (
	// DEBUG_MODE = true turns on debug mode
	DEBUG_MODE = false
)
