// Package startup turns command-line options into a running application. It
// resolves the run mode, the main and cog configuration files and the .env
// file in a fixed order, then builds the application and runs it. Missing
// files fall back to defaults; broken files are returned as errors.
package startup
