// Package cli builds the git-garbage-scraper root command. It loads layered
// configuration, creates the zap logger, and hands both to the scrape report
// command from internal/forensics.
package cli
