// Package export writes a ClickUp doc page tree to disk.
//
// The tree is walked depth-first, pre-order, one filesystem operation at a
// time. For every page named N under a directory D:
//
//	D/N.md         page content, byte for byte (only when content is present)
//	D/N.meta.json  the page object minus "pages", 2-space indented
//	D/N/           children, recursively (only when there is at least one)
//
// N is the page name, or the page id when the name is missing or empty,
// passed through sanitize.Segment so it is always a single portable path
// segment. A page with neither content nor children writes nothing.
//
// # Usage
//
//	pages, err := page.Parse(data)
//	if err != nil {
//		return err // *page.ValidationError, nothing written
//	}
//	exporter := export.New(export.WithCollisionPolicy(export.CollisionFail))
//	result, err := exporter.ExportTree(pages, "./clickup_docs_export")
//
// # Errors
//
// The first failure stops the export. Files written before it stay on disk;
// there is no rollback. Filesystem failures are returned as system errors
// (exit code 2) wrapping the *fs.PathError. Under CollisionFail, two
// siblings whose sanitized names are equal ignoring case produce a conflict
// error (exit code 3) matching ErrNameCollision; under CollisionOverwrite
// the later sibling wins and the collision is only reported to the Observer.
//
// # Filesystem
//
// All writes go through an afero.Fs, the OS filesystem unless WithFs says
// otherwise. Files are created 0600 and directories 0755.
package export
