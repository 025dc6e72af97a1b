// Package project outlines the Python files of a directory tree.
//
// Walk lists the files a LanguageMatcher accepts, honouring .gitignore and
// .ignore files. Outline splits one document into consecutive blocks by
// resolving a cursor on each top-level line in turn, so the outline always
// agrees with what the select command would pick at that line. OutlineTree
// combines the two and outlines files in parallel.
package project
