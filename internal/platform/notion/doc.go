// Package notion is the data-store adapter backed by the Notion API.
//
// It reads the areas, projects, tasks, and contacts databases into domain
// snapshots for prompt context, and executes the create/edit/archive
// actions the AI handlers decide on. Property names follow the workspace
// database schemas; translation between Notion property objects and domain
// types stays inside this package.
package notion
