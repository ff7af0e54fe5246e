// Package dashboard is the headless question dashboard: search, paging,
// the add and edit forms, and delete, driven by a live question list
// subscription.
//
// Rendering is left to the caller. A Model produces View values; the CLI
// prints them and tests assert on them.
package dashboard
