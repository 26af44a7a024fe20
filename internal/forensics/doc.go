// Package forensics recovers unreachable commits from a repository and reports them.
//
// Service probes the object store, and for every unreachable commit collects the
// commit text, the diff from its first parent, and the files of its tree. The
// resulting Report is rendered as text, JSON, or YAML. CommandBuilder exposes the
// workflow as a Cobra command.
package forensics
