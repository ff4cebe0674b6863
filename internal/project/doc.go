// Package project manages the file being edited: reading it at startup
// (preferring a crash recovery copy), saving it, saving it under a new name
// and reporting edits made to it by other programs.
//
// # Architecture
//
//   - Project: the open file's path plus the components below
//   - vfs: file system abstraction, OS or in-memory
//   - filestore: whole-file reads, atomic writes, recovery files
//   - watcher: fsnotify based change detection with debouncing
//
// # Quick Start
//
//	proj, err := project.New(project.WithWatch(true))
//	if err != nil {
//	    return err
//	}
//	defer proj.Close()
//
//	data, recovered, err := proj.Open("notes.txt")
//	...
//	err = proj.Save(content)
//
// Changes() delivers events for writes by other programs only: events whose
// file content matches the last save are filtered out.
package project
