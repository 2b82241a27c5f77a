// Package plugin is the extension runtime of the client.
//
// Plugins never touch host state directly. They register artifacts through
// an API value and the runtime decides when to call back into them:
//
//   - Registry holds commands, timed tasks, autocomplete sets and window
//     bindings. It is an explicit value owned by the host.
//   - Dispatcher checks a command's argument bounds before invoking it.
//   - Scheduler fires timed tasks from the host tick without goroutines.
//   - Mediator owns the mapping from plugin tags to host windows.
//   - Binder completes input lines against autocomplete sets.
//
// Everything runs on the host loop's goroutine. Callbacks may register new
// artifacts while they run; components iterate over snapshots so this never
// disturbs a pass in progress. A failing callback is logged and isolated,
// and never takes the host down.
package plugin
